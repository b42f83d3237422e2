package auth

import (
	"errors"
	"time"
)

// ErrInvalidToken is returned by any strategy when a token fails validation.
var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and validates bearer tokens carrying the account id.
type Strategy interface {
	IssueToken(accountID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token issuance.
type Options struct {
	TTL time.Duration
}

package model

import "time"

// Account represents a registered customer of the EcoPoints program.
type Account struct {
	ID           int64
	Login        string
	PasswordHash string
	Points       int64
	CreatedAt    time.Time
}

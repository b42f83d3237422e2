package repository

import (
	"context"

	"github.com/verdora/ecotrade/internal/domain/model"
)

// CartRepository persists per-account cart snapshots. Load returns an empty
// snapshot when no cart exists or the stored payload cannot be decoded;
// absence and corruption are never errors.
type CartRepository interface {
	Load(ctx context.Context, accountID int64) (*model.CartSnapshot, error)
	Save(ctx context.Context, accountID int64, snapshot *model.CartSnapshot) error
	Clear(ctx context.Context, accountID int64) error
}

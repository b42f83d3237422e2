// Package ledger owns the EcoPoints balance. Every mutation goes through
// Earn or Spend; both commit atomically with their durable write, so the
// balance can never go negative and no spend is ever partially applied.
package ledger

import (
	"context"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/repository"
)

// PointsLedger applies point mutations against the account store.
type PointsLedger struct {
	accounts repository.AccountRepository
}

// New constructs PointsLedger.
func New(accounts repository.AccountRepository) *PointsLedger {
	return &PointsLedger{accounts: accounts}
}

// Earn increases the balance by amount. Zero is a no-op; negative amounts are
// rejected before any mutation.
func (l *PointsLedger) Earn(ctx context.Context, accountID, amount int64) error {
	if amount < 0 {
		return domainErrors.ErrInvalidAmount
	}
	if amount == 0 {
		return nil
	}
	return l.accounts.Earn(ctx, accountID, amount)
}

// Spend decreases the balance by amount iff amount <= balance. It fails with
// ErrInsufficientPoints otherwise and leaves the balance unchanged; the
// shortfall is never silently clamped.
func (l *PointsLedger) Spend(ctx context.Context, accountID, amount int64) error {
	if amount < 0 {
		return domainErrors.ErrInvalidAmount
	}
	if amount == 0 {
		return nil
	}
	return l.accounts.Spend(ctx, accountID, amount)
}

// Balance returns the current point balance.
func (l *PointsLedger) Balance(ctx context.Context, accountID int64) (int64, error) {
	return l.accounts.Balance(ctx, accountID)
}

package repository

import (
	"context"

	"github.com/verdora/ecotrade/internal/domain/model"
)

// AccountRepository describes persistence operations for accounts and their
// point balances. Earn and Spend commit the balance change atomically with
// the durable write; Spend must fail without mutation when the balance is
// insufficient.
type AccountRepository interface {
	Create(ctx context.Context, login, passwordHash string, startingPoints int64) (*model.Account, error)
	GetByLogin(ctx context.Context, login string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	Balance(ctx context.Context, id int64) (int64, error)
	Earn(ctx context.Context, id int64, amount int64) error
	Spend(ctx context.Context, id int64, amount int64) error
}

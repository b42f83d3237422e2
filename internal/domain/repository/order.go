package repository

import (
	"context"

	"github.com/verdora/ecotrade/internal/domain/model"
)

// OrderRepository describes persistence operations for checked-out orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.Order, error)
	ListFulfilledByAccount(ctx context.Context, accountID int64) ([]model.Order, error)
	SelectBatchForProcessing(ctx context.Context, limit int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}

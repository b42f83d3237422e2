package repository

import (
	"context"

	"github.com/verdora/ecotrade/internal/domain/model"
)

// PlantRepository describes persistence operations for owned plants.
type PlantRepository interface {
	GetByID(ctx context.Context, id int64) (*model.PlantRecord, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.PlantRecord, error)
	Update(ctx context.Context, plant *model.PlantRecord) error
	Delete(ctx context.Context, id int64) error
	// MaterializeFromOrder creates plant records for the plant lines of a
	// fulfilled order exactly once, flipping the order's projection flag in
	// the same transaction, and returns every plant derived from that order.
	MaterializeFromOrder(ctx context.Context, order *model.Order) ([]model.PlantRecord, error)
}

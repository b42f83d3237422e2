package repository

import (
	"context"

	"github.com/verdora/ecotrade/internal/domain/model"
)

// RecyclingRepository stores immutable plastic submissions.
type RecyclingRepository interface {
	Create(ctx context.Context, submission *model.RecyclingSubmission) (*model.RecyclingSubmission, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.RecyclingSubmission, error)
}

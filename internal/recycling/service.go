// Package recycling accepts plastic drop-off submissions, converts them to
// points through the per-type rate table, and keeps the submission history.
package recycling

import (
	"context"
	"time"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/domain/repository"
	"github.com/verdora/ecotrade/internal/rewards"
)

// PointsAwarder credits recycling rewards to the account balance.
type PointsAwarder interface {
	Earn(ctx context.Context, accountID, amount int64) error
}

// Service validates and records recycling submissions.
type Service struct {
	submissions repository.RecyclingRepository
	ledger      PointsAwarder
	now         func() time.Time
}

// NewService constructs Service.
func NewService(submissions repository.RecyclingRepository, ledger PointsAwarder) *Service {
	return &Service{submissions: submissions, ledger: ledger, now: time.Now}
}

// Submit validates the drop-off, persists it and credits the computed points.
// Validation happens before any write, so a rejected submission leaves both
// the history and the balance untouched.
func (s *Service) Submit(ctx context.Context, accountID int64, plasticType model.PlasticType, weightKg float64, notes string) (*model.RecyclingSubmission, error) {
	if !plasticType.Valid() {
		return nil, domainErrors.ErrInvalidPlasticType
	}
	points, err := rewards.RecyclingPoints(weightKg, plasticType)
	if err != nil {
		return nil, err
	}

	submission := &model.RecyclingSubmission{
		AccountID:   accountID,
		PlasticType: plasticType,
		WeightKg:    weightKg,
		Points:      points,
		Notes:       notes,
		SubmittedAt: s.now(),
	}
	created, err := s.submissions.Create(ctx, submission)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Earn(ctx, accountID, points); err != nil {
		return nil, err
	}
	return created, nil
}

// History returns the account's recycling submissions.
func (s *Service) History(ctx context.Context, accountID int64) ([]model.RecyclingSubmission, error) {
	return s.submissions.ListByAccount(ctx, accountID)
}

// Package plant implements the per-plant lifecycle state machine: growth
// stages, health, maintenance timestamps, bonus eligibility windows, and the
// reconciliation of plant collections reported by two sources.
package plant

import (
	"context"
	"time"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/domain/repository"
	"github.com/verdora/ecotrade/internal/rewards"
)

// PointsAwarder is the slice of the ledger the lifecycle needs.
type PointsAwarder interface {
	Earn(ctx context.Context, accountID, amount int64) error
}

// Lifecycle manages owned plants and their maintenance rewards.
type Lifecycle struct {
	plants repository.PlantRepository
	orders repository.OrderRepository
	ledger PointsAwarder
	now    func() time.Time
}

// NewLifecycle constructs Lifecycle.
func NewLifecycle(plants repository.PlantRepository, orders repository.OrderRepository, ledger PointsAwarder) *Lifecycle {
	return &Lifecycle{plants: plants, orders: orders, ledger: ledger, now: time.Now}
}

// MaintenanceResult reports the outcome of a plant-care action.
type MaintenanceResult struct {
	Plant         *model.PlantRecord
	PointsAwarded int64
	BonusApplied  bool
}

func (l *Lifecycle) owned(ctx context.Context, accountID, plantID int64) (*model.PlantRecord, error) {
	p, err := l.plants.GetByID(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if p.AccountID != accountID {
		return nil, domainErrors.ErrNotFound
	}
	return p, nil
}

// Water records a watering action. Re-watering inside the 3-day hard floor
// fails with ErrTooSoon; acting inside the [5,9]-day window earns the bonus.
func (l *Lifecycle) Water(ctx context.Context, accountID, plantID int64) (*MaintenanceResult, error) {
	return l.RecordMaintenance(ctx, accountID, model.MaintenanceEvent{
		PlantID: plantID,
		Type:    model.MaintenanceWater,
	})
}

// Fertilize records a fertilizing action, floor 20 days, bonus window [25,35].
func (l *Lifecycle) Fertilize(ctx context.Context, accountID, plantID int64) (*MaintenanceResult, error) {
	return l.RecordMaintenance(ctx, accountID, model.MaintenanceEvent{
		PlantID: plantID,
		Type:    model.MaintenanceFertilize,
	})
}

// RecordMaintenance applies a generic plant-care action. Water and fertilize
// types obey the hard floors and windowed bonuses; prune, repot and other
// always succeed when the plant exists. A provided height updates the plant
// and awards growth points when the plant got taller.
func (l *Lifecycle) RecordMaintenance(ctx context.Context, accountID int64, event model.MaintenanceEvent) (*MaintenanceResult, error) {
	if !event.Type.Valid() {
		return nil, domainErrors.ErrInvalidMaintenanceType
	}

	p, err := l.owned(ctx, accountID, event.PlantID)
	if err != nil {
		return nil, err
	}

	now := event.At
	if now.IsZero() {
		now = l.now()
	}

	var points int64
	var bonus bool

	switch event.Type {
	case model.MaintenanceWater:
		if !wateringAllowed(p, now) {
			return nil, domainErrors.ErrTooSoon
		}
		bonus = inWateringBonusWindow(p, now)
		points = rewards.WateringPoints(bonus)
		at := now
		p.LastWatered = &at
	case model.MaintenanceFertilize:
		if !fertilizingAllowed(p, now) {
			return nil, domainErrors.ErrTooSoon
		}
		bonus = inFertilizingBonusWindow(p, now)
		points = rewards.FertilizingPoints(bonus)
		at := now
		p.LastFertilized = &at
	case model.MaintenancePrune:
		points = rewards.PrunePoints
	case model.MaintenanceRepot:
		points = rewards.RepotPoints
	default:
		points = rewards.OtherCarePoints
	}

	if event.HeightCm != nil {
		if p.HeightCm != nil {
			points += rewards.GrowthPoints(*p.HeightCm, *event.HeightCm)
		}
		height := *event.HeightCm
		p.HeightCm = &height
	}

	if event.Notes != "" {
		p.Notes = event.Notes
	}

	if err := l.plants.Update(ctx, p); err != nil {
		return nil, err
	}

	if points > 0 {
		if err := l.ledger.Earn(ctx, accountID, points); err != nil {
			return nil, err
		}
	}

	return &MaintenanceResult{Plant: p, PointsAwarded: points, BonusApplied: bonus}, nil
}

// AdvanceStage moves the plant to its next growth stage. Stages only advance;
// a fully grown plant stays fully grown.
func (l *Lifecycle) AdvanceStage(ctx context.Context, accountID, plantID int64) (*model.PlantRecord, error) {
	p, err := l.owned(ctx, accountID, plantID)
	if err != nil {
		return nil, err
	}
	p.GrowthStage = p.GrowthStage.Next()
	if err := l.plants.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetHealth assigns the plant's health status directly.
func (l *Lifecycle) SetHealth(ctx context.Context, accountID, plantID int64, status model.HealthStatus) (*model.PlantRecord, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidHealthStatus
	}
	p, err := l.owned(ctx, accountID, plantID)
	if err != nil {
		return nil, err
	}
	p.HealthStatus = status
	if err := l.plants.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the plant. Irreversible.
func (l *Lifecycle) Delete(ctx context.Context, accountID, plantID int64) error {
	if _, err := l.owned(ctx, accountID, plantID); err != nil {
		return err
	}
	return l.plants.Delete(ctx, plantID)
}

// ListForAccount composes the account's plant collection from its two
// sources: directly stored records and records projected from fulfilled plant
// orders. The merge dedups by id with order-derived records taking precedence.
func (l *Lifecycle) ListForAccount(ctx context.Context, accountID int64) ([]model.PlantRecord, error) {
	direct, err := l.plants.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	derived, err := l.orderDerived(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return Merge(direct, derived), nil
}

// ProjectOrder materializes plant records from a fulfilled order's plant
// lines. Safe to call repeatedly; projection happens at most once per order.
func (l *Lifecycle) ProjectOrder(ctx context.Context, order *model.Order) ([]model.PlantRecord, error) {
	if order.Status != model.OrderStatusFulfilled {
		return nil, nil
	}
	return l.plants.MaterializeFromOrder(ctx, order)
}

func (l *Lifecycle) orderDerived(ctx context.Context, accountID int64) ([]model.PlantRecord, error) {
	orders, err := l.orders.ListFulfilledByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var derived []model.PlantRecord
	for i := range orders {
		plants, err := l.plants.MaterializeFromOrder(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		derived = append(derived, plants...)
	}
	return derived, nil
}

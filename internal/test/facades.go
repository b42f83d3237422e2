package test

import (
	"context"

	"github.com/verdora/ecotrade/internal/cart"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/plant"
)

// MarketplaceFacadeStub implements the full handler facade surface with
// per-method function overrides.
type MarketplaceFacadeStub struct {
	AuthFacadeStub

	BalanceFn func(context.Context, int64) (int64, float64, error)

	CartFn        func(context.Context, int64) (*model.CartSnapshot, *cart.Pricing, error)
	AddItemFn     func(context.Context, int64, int64) (*model.CartSnapshot, error)
	RemoveItemFn  func(context.Context, int64, int64) error
	SetQuantityFn func(context.Context, int64, int64, int) (*model.CartSnapshot, error)
	ApplyPointsFn func(context.Context, int64, bool) error
	RedeemFn      func(context.Context, int64, int64) (*model.CartSnapshot, error)
	CheckoutFn    func(context.Context, int64) (*model.Order, error)

	OrdersFn func(context.Context, int64) ([]model.Order, error)

	PlantsFn       func(context.Context, int64) ([]model.PlantRecord, error)
	WaterFn        func(context.Context, int64, int64) (*plant.MaintenanceResult, error)
	FertilizeFn    func(context.Context, int64, int64) (*plant.MaintenanceResult, error)
	CareFn         func(context.Context, int64, model.MaintenanceEvent) (*plant.MaintenanceResult, error)
	AdvanceStageFn func(context.Context, int64, int64) (*model.PlantRecord, error)
	SetHealthFn    func(context.Context, int64, int64, model.HealthStatus) (*model.PlantRecord, error)
	DeletePlantFn  func(context.Context, int64, int64) error

	SubmitRecyclingFn  func(context.Context, int64, model.PlasticType, float64, string) (*model.RecyclingSubmission, error)
	RecyclingHistoryFn func(context.Context, int64) ([]model.RecyclingSubmission, error)
}

func (s *MarketplaceFacadeStub) Balance(ctx context.Context, accountID int64) (int64, float64, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, accountID)
	}
	return 0, 0, nil
}

func (s *MarketplaceFacadeStub) Cart(ctx context.Context, accountID int64) (*model.CartSnapshot, *cart.Pricing, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, accountID)
	}
	return &model.CartSnapshot{}, &cart.Pricing{}, nil
}

func (s *MarketplaceFacadeStub) AddCartItem(ctx context.Context, accountID, productID int64) (*model.CartSnapshot, error) {
	if s.AddItemFn != nil {
		return s.AddItemFn(ctx, accountID, productID)
	}
	return &model.CartSnapshot{}, nil
}

func (s *MarketplaceFacadeStub) RemoveCartItem(ctx context.Context, accountID, productID int64) error {
	if s.RemoveItemFn != nil {
		return s.RemoveItemFn(ctx, accountID, productID)
	}
	return nil
}

func (s *MarketplaceFacadeStub) SetCartQuantity(ctx context.Context, accountID, productID int64, quantity int) (*model.CartSnapshot, error) {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(ctx, accountID, productID, quantity)
	}
	return &model.CartSnapshot{}, nil
}

func (s *MarketplaceFacadeStub) SetApplyPoints(ctx context.Context, accountID int64, apply bool) error {
	if s.ApplyPointsFn != nil {
		return s.ApplyPointsFn(ctx, accountID, apply)
	}
	return nil
}

func (s *MarketplaceFacadeStub) RedeemCartItem(ctx context.Context, accountID, productID int64) (*model.CartSnapshot, error) {
	if s.RedeemFn != nil {
		return s.RedeemFn(ctx, accountID, productID)
	}
	return &model.CartSnapshot{}, nil
}

func (s *MarketplaceFacadeStub) Checkout(ctx context.Context, accountID int64) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, accountID)
	}
	return &model.Order{AccountID: accountID, Status: model.OrderStatusSubmitted}, nil
}

func (s *MarketplaceFacadeStub) Orders(ctx context.Context, accountID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, accountID)
	}
	return nil, nil
}

func (s *MarketplaceFacadeStub) Plants(ctx context.Context, accountID int64) ([]model.PlantRecord, error) {
	if s.PlantsFn != nil {
		return s.PlantsFn(ctx, accountID)
	}
	return nil, nil
}

func (s *MarketplaceFacadeStub) WaterPlant(ctx context.Context, accountID, plantID int64) (*plant.MaintenanceResult, error) {
	if s.WaterFn != nil {
		return s.WaterFn(ctx, accountID, plantID)
	}
	return &plant.MaintenanceResult{Plant: &model.PlantRecord{ID: plantID, AccountID: accountID}}, nil
}

func (s *MarketplaceFacadeStub) FertilizePlant(ctx context.Context, accountID, plantID int64) (*plant.MaintenanceResult, error) {
	if s.FertilizeFn != nil {
		return s.FertilizeFn(ctx, accountID, plantID)
	}
	return &plant.MaintenanceResult{Plant: &model.PlantRecord{ID: plantID, AccountID: accountID}}, nil
}

func (s *MarketplaceFacadeStub) RecordPlantCare(ctx context.Context, accountID int64, event model.MaintenanceEvent) (*plant.MaintenanceResult, error) {
	if s.CareFn != nil {
		return s.CareFn(ctx, accountID, event)
	}
	return &plant.MaintenanceResult{Plant: &model.PlantRecord{ID: event.PlantID, AccountID: accountID}}, nil
}

func (s *MarketplaceFacadeStub) AdvancePlantStage(ctx context.Context, accountID, plantID int64) (*model.PlantRecord, error) {
	if s.AdvanceStageFn != nil {
		return s.AdvanceStageFn(ctx, accountID, plantID)
	}
	return &model.PlantRecord{ID: plantID, AccountID: accountID}, nil
}

func (s *MarketplaceFacadeStub) SetPlantHealth(ctx context.Context, accountID, plantID int64, status model.HealthStatus) (*model.PlantRecord, error) {
	if s.SetHealthFn != nil {
		return s.SetHealthFn(ctx, accountID, plantID, status)
	}
	return &model.PlantRecord{ID: plantID, AccountID: accountID, HealthStatus: status}, nil
}

func (s *MarketplaceFacadeStub) DeletePlant(ctx context.Context, accountID, plantID int64) error {
	if s.DeletePlantFn != nil {
		return s.DeletePlantFn(ctx, accountID, plantID)
	}
	return nil
}

func (s *MarketplaceFacadeStub) SubmitRecycling(ctx context.Context, accountID int64, plasticType model.PlasticType, weightKg float64, notes string) (*model.RecyclingSubmission, error) {
	if s.SubmitRecyclingFn != nil {
		return s.SubmitRecyclingFn(ctx, accountID, plasticType, weightKg, notes)
	}
	return &model.RecyclingSubmission{AccountID: accountID, PlasticType: plasticType, WeightKg: weightKg}, nil
}

func (s *MarketplaceFacadeStub) RecyclingHistory(ctx context.Context, accountID int64) ([]model.RecyclingSubmission, error) {
	if s.RecyclingHistoryFn != nil {
		return s.RecyclingHistoryFn(ctx, accountID)
	}
	return nil, nil
}

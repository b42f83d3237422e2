package handlers

import (
	"context"

	"github.com/verdora/ecotrade/internal/cart"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/plant"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// BalanceFacade provides the point balance view.
type BalanceFacade interface {
	Balance(ctx context.Context, accountID int64) (int64, float64, error)
}

// CartFacade encapsulates cart operations exposed via HTTP.
type CartFacade interface {
	Cart(ctx context.Context, accountID int64) (*model.CartSnapshot, *cart.Pricing, error)
	AddCartItem(ctx context.Context, accountID, productID int64) (*model.CartSnapshot, error)
	RemoveCartItem(ctx context.Context, accountID, productID int64) error
	SetCartQuantity(ctx context.Context, accountID, productID int64, quantity int) (*model.CartSnapshot, error)
	SetApplyPoints(ctx context.Context, accountID int64, apply bool) error
	RedeemCartItem(ctx context.Context, accountID, productID int64) (*model.CartSnapshot, error)
	Checkout(ctx context.Context, accountID int64) (*model.Order, error)
}

// OrderFacade lists checked-out orders.
type OrderFacade interface {
	Orders(ctx context.Context, accountID int64) ([]model.Order, error)
}

// PlantFacade encapsulates plant collection and care operations.
type PlantFacade interface {
	Plants(ctx context.Context, accountID int64) ([]model.PlantRecord, error)
	WaterPlant(ctx context.Context, accountID, plantID int64) (*plant.MaintenanceResult, error)
	FertilizePlant(ctx context.Context, accountID, plantID int64) (*plant.MaintenanceResult, error)
	RecordPlantCare(ctx context.Context, accountID int64, event model.MaintenanceEvent) (*plant.MaintenanceResult, error)
	AdvancePlantStage(ctx context.Context, accountID, plantID int64) (*model.PlantRecord, error)
	SetPlantHealth(ctx context.Context, accountID, plantID int64, status model.HealthStatus) (*model.PlantRecord, error)
	DeletePlant(ctx context.Context, accountID, plantID int64) error
}

// RecyclingFacade encapsulates plastic drop-off operations.
type RecyclingFacade interface {
	SubmitRecycling(ctx context.Context, accountID int64, plasticType model.PlasticType, weightKg float64, notes string) (*model.RecyclingSubmission, error)
	RecyclingHistory(ctx context.Context, accountID int64) ([]model.RecyclingSubmission, error)
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	BalanceFacade
	CartFacade
	OrderFacade
	PlantFacade
	RecyclingFacade
}

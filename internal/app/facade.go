package app

import (
	"context"

	"github.com/verdora/ecotrade/internal/adapter/fulfillment"
	"github.com/verdora/ecotrade/internal/cart"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/domain/repository"
	"github.com/verdora/ecotrade/internal/ledger"
	"github.com/verdora/ecotrade/internal/plant"
	"github.com/verdora/ecotrade/internal/recycling"
	"github.com/verdora/ecotrade/internal/rewards"
	"github.com/verdora/ecotrade/internal/usecase"
)

// EcoFacade aggregates the application services behind one surface consumed
// by the HTTP handlers and the status worker.
type EcoFacade struct {
	auth      *usecase.AuthUseCase
	ledger    *ledger.PointsLedger
	cart      *cart.Engine
	plants    *plant.Lifecycle
	recycling *recycling.Service
	orders    repository.OrderRepository
	client    fulfillment.Client
}

// NewEcoFacade constructs EcoFacade.
func NewEcoFacade(
	auth *usecase.AuthUseCase,
	pointsLedger *ledger.PointsLedger,
	cartEngine *cart.Engine,
	plants *plant.Lifecycle,
	recyclingService *recycling.Service,
	orders repository.OrderRepository,
	client fulfillment.Client,
) *EcoFacade {
	return &EcoFacade{
		auth:      auth,
		ledger:    pointsLedger,
		cart:      cartEngine,
		plants:    plants,
		recycling: recyclingService,
		orders:    orders,
		client:    client,
	}
}

func (f *EcoFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *EcoFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *EcoFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

// Balance returns the point balance and its currency value.
func (f *EcoFacade) Balance(ctx context.Context, accountID int64) (int64, float64, error) {
	points, err := f.ledger.Balance(ctx, accountID)
	if err != nil {
		return 0, 0, err
	}
	return points, rewards.PointsToCurrency(points), nil
}

func (f *EcoFacade) Cart(ctx context.Context, accountID int64) (*model.CartSnapshot, *cart.Pricing, error) {
	snap, err := f.cart.Snapshot(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	pricing, err := f.cart.Price(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	return snap, pricing, nil
}

func (f *EcoFacade) AddCartItem(ctx context.Context, accountID, productID int64) (*model.CartSnapshot, error) {
	return f.cart.AddItem(ctx, accountID, productID)
}

func (f *EcoFacade) RemoveCartItem(ctx context.Context, accountID, productID int64) error {
	return f.cart.RemoveItem(ctx, accountID, productID)
}

func (f *EcoFacade) SetCartQuantity(ctx context.Context, accountID, productID int64, quantity int) (*model.CartSnapshot, error) {
	return f.cart.SetQuantity(ctx, accountID, productID, quantity)
}

func (f *EcoFacade) SetApplyPoints(ctx context.Context, accountID int64, apply bool) error {
	return f.cart.SetApplyPoints(ctx, accountID, apply)
}

func (f *EcoFacade) RedeemCartItem(ctx context.Context, accountID, productID int64) (*model.CartSnapshot, error) {
	return f.cart.RedeemItem(ctx, accountID, productID)
}

func (f *EcoFacade) Checkout(ctx context.Context, accountID int64) (*model.Order, error) {
	return f.cart.Checkout(ctx, accountID)
}

func (f *EcoFacade) Orders(ctx context.Context, accountID int64) ([]model.Order, error) {
	return f.orders.ListByAccount(ctx, accountID)
}

func (f *EcoFacade) Plants(ctx context.Context, accountID int64) ([]model.PlantRecord, error) {
	return f.plants.ListForAccount(ctx, accountID)
}

func (f *EcoFacade) WaterPlant(ctx context.Context, accountID, plantID int64) (*plant.MaintenanceResult, error) {
	return f.plants.Water(ctx, accountID, plantID)
}

func (f *EcoFacade) FertilizePlant(ctx context.Context, accountID, plantID int64) (*plant.MaintenanceResult, error) {
	return f.plants.Fertilize(ctx, accountID, plantID)
}

func (f *EcoFacade) RecordPlantCare(ctx context.Context, accountID int64, event model.MaintenanceEvent) (*plant.MaintenanceResult, error) {
	return f.plants.RecordMaintenance(ctx, accountID, event)
}

func (f *EcoFacade) AdvancePlantStage(ctx context.Context, accountID, plantID int64) (*model.PlantRecord, error) {
	return f.plants.AdvanceStage(ctx, accountID, plantID)
}

func (f *EcoFacade) SetPlantHealth(ctx context.Context, accountID, plantID int64, status model.HealthStatus) (*model.PlantRecord, error) {
	return f.plants.SetHealth(ctx, accountID, plantID, status)
}

func (f *EcoFacade) DeletePlant(ctx context.Context, accountID, plantID int64) error {
	return f.plants.Delete(ctx, accountID, plantID)
}

func (f *EcoFacade) SubmitRecycling(ctx context.Context, accountID int64, plasticType model.PlasticType, weightKg float64, notes string) (*model.RecyclingSubmission, error) {
	return f.recycling.Submit(ctx, accountID, plasticType, weightKg, notes)
}

func (f *EcoFacade) RecyclingHistory(ctx context.Context, accountID int64) ([]model.RecyclingSubmission, error) {
	return f.recycling.History(ctx, accountID)
}

func (f *EcoFacade) OrdersForProcessing(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.SelectBatchForProcessing(ctx, limit)
}

func (f *EcoFacade) CheckFulfillment(ctx context.Context, ref string) (*model.Fulfillment, error) {
	return f.client.Fetch(ctx, ref)
}

func (f *EcoFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

// ProjectOrderPlants materializes plant records for a fulfilled order.
func (f *EcoFacade) ProjectOrderPlants(ctx context.Context, orderID int64) error {
	order, err := f.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	_, err = f.plants.ProjectOrder(ctx, order)
	return err
}

package app

import (
	"context"
	"testing"

	"github.com/verdora/ecotrade/internal/cart"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/ledger"
	"github.com/verdora/ecotrade/internal/plant"
	"github.com/verdora/ecotrade/internal/recycling"
	testhelpers "github.com/verdora/ecotrade/internal/test"
	"github.com/verdora/ecotrade/internal/usecase"
)

type facadeFixture struct {
	facade   *EcoFacade
	accounts *testhelpers.AccountRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	plants   *testhelpers.PlantRepositoryStub
	client   *testhelpers.FulfillmentClientStub
}

func newFacadeFixture() *facadeFixture {
	accounts := testhelpers.NewAccountRepositoryStub()
	carts := testhelpers.NewCartRepositoryStub()
	orders := &testhelpers.OrderRepositoryStub{}
	plants := testhelpers.NewPlantRepositoryStub()
	submissions := &testhelpers.RecyclingRepositoryStub{}
	client := testhelpers.NewFulfillmentClientStub()

	pointsLedger := ledger.New(accounts)
	auth := usecase.NewAuthUseCase(accounts, testhelpers.HasherStub{}, testhelpers.StrategyStub{}, 100)
	engine := cart.NewEngine(carts, orders, pointsLedger, client, client)
	lifecycle := plant.NewLifecycle(plants, orders, pointsLedger)
	recyclingService := recycling.NewService(submissions, pointsLedger)

	return &facadeFixture{
		facade:   NewEcoFacade(auth, pointsLedger, engine, lifecycle, recyclingService, orders, client),
		accounts: accounts,
		orders:   orders,
		plants:   plants,
		client:   client,
	}
}

func TestFacadeRegisterGrantsStartingPoints(t *testing.T) {
	f := newFacadeFixture()

	token, err := f.facade.Register(context.Background(), "alice", "password")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected token")
	}

	points, currency, err := f.facade.Balance(context.Background(), 1)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if points != 100 {
		t.Fatalf("expected starting grant of 100 points, got %d", points)
	}
	if currency != 10 {
		t.Fatalf("expected currency value 10, got %v", currency)
	}
}

func TestFacadeCartFlow(t *testing.T) {
	f := newFacadeFixture()
	accountID := f.accounts.Seed("user", 0)
	f.client.Products[1] = &model.Product{ID: 1, Name: "Compost bin", Price: 100, EarnPerUnit: 5}

	if _, err := f.facade.AddCartItem(context.Background(), accountID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := f.facade.SetCartQuantity(context.Background(), accountID, 1, 2); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	snap, pricing, err := f.facade.Cart(context.Background(), accountID)
	if err != nil {
		t.Fatalf("cart failed: %v", err)
	}
	if len(snap.Lines) != 1 || pricing.Subtotal != 200 {
		t.Fatalf("unexpected cart state: lines=%d subtotal=%v", len(snap.Lines), pricing.Subtotal)
	}

	order, err := f.facade.Checkout(context.Background(), accountID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.PointsEarned != 10 {
		t.Fatalf("expected 10 points earned, got %d", order.PointsEarned)
	}
}

func TestFacadeProjectOrderPlants(t *testing.T) {
	f := newFacadeFixture()
	f.orders.Orders = []model.Order{{
		ID:        5,
		AccountID: 1,
		Status:    model.OrderStatusFulfilled,
		Lines:     []model.OrderLine{{ProductID: 7, Name: "Monstera", Quantity: 2, IsPlant: true}},
	}}

	if err := f.facade.ProjectOrderPlants(context.Background(), 5); err != nil {
		t.Fatalf("projection failed: %v", err)
	}
	if len(f.plants.Plants) != 2 {
		t.Fatalf("expected 2 plants projected, got %d", len(f.plants.Plants))
	}

	// Repeat projection must not duplicate.
	if err := f.facade.ProjectOrderPlants(context.Background(), 5); err != nil {
		t.Fatalf("repeat projection failed: %v", err)
	}
	if len(f.plants.Plants) != 2 {
		t.Fatalf("projection duplicated plants: %d", len(f.plants.Plants))
	}
}

func TestFacadeRecycling(t *testing.T) {
	f := newFacadeFixture()
	accountID := f.accounts.Seed("user", 0)

	submission, err := f.facade.SubmitRecycling(context.Background(), accountID, model.PlasticPET, 2.5, "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submission.Points != 25 {
		t.Fatalf("expected 25 points, got %d", submission.Points)
	}

	history, err := f.facade.RecyclingHistory(context.Background(), accountID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one submission, got %d", len(history))
	}
}

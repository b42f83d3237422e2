package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/verdora/ecotrade/internal/adapter/fulfillment"
	"github.com/verdora/ecotrade/internal/app"
	"github.com/verdora/ecotrade/internal/config"
	"github.com/verdora/ecotrade/internal/domain/repository"
	"github.com/verdora/ecotrade/internal/storage/postgres"
	"github.com/verdora/ecotrade/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		FulfillmentAddress: "http://localhost",
		TokenSecret:        "secret",
		AuthStrategy:       "hmac",
		StartingGrant:      100,
		OrderPollInterval:  time.Millisecond,
		WorkerPoolSize:     1,
		ShutdownTimeout:    time.Millisecond,
		MaxOrdersBatch:     1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	accountRepo := test.NewAccountRepositoryStub()
	cartRepo := test.NewCartRepositoryStub()
	plantRepo := test.NewPlantRepositoryStub()
	orderRepo := &test.OrderRepositoryStub{}
	recyclingRepo := &test.RecyclingRepositoryStub{}
	client := test.NewFulfillmentClientStub()

	var facade *app.EcoFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.AccountRepository(accountRepo)),
			fx.Replace(repository.CartRepository(cartRepo)),
			fx.Replace(repository.PlantRepository(plantRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.RecyclingRepository(recyclingRepo)),
			fx.Replace(fulfillment.Client(client)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected eco facade instance")
	}
}

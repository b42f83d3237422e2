package di

import (
	"go.uber.org/fx"

	"github.com/verdora/ecotrade/internal/adapter/fulfillment"
	"github.com/verdora/ecotrade/internal/app"
	"github.com/verdora/ecotrade/internal/cart"
	"github.com/verdora/ecotrade/internal/config"
	"github.com/verdora/ecotrade/internal/ledger"
	"github.com/verdora/ecotrade/internal/logger"
	"github.com/verdora/ecotrade/internal/pkg/auth"
	"github.com/verdora/ecotrade/internal/plant"
	"github.com/verdora/ecotrade/internal/recycling"
	"github.com/verdora/ecotrade/internal/server/http/router"
	"github.com/verdora/ecotrade/internal/storage/postgres"
	"github.com/verdora/ecotrade/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		fulfillment.Module,
		ledger.Module,
		cart.Module,
		plant.Module,
		recycling.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

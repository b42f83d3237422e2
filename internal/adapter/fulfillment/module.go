package fulfillment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/verdora/ecotrade/internal/config"
)

// Module exposes the fulfillment client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.FulfillmentAddress, p.Logger)
}

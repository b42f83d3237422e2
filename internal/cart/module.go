package cart

import (
	"go.uber.org/fx"

	"github.com/verdora/ecotrade/internal/adapter/fulfillment"
	"github.com/verdora/ecotrade/internal/domain/repository"
	"github.com/verdora/ecotrade/internal/ledger"
)

// Module provides the cart pricing engine to the fx container.
var Module = fx.Provide(newEngine)

type engineParams struct {
	fx.In

	Carts  repository.CartRepository
	Orders repository.OrderRepository
	Ledger *ledger.PointsLedger
	Client fulfillment.Client
}

func newEngine(p engineParams) *Engine {
	return NewEngine(p.Carts, p.Orders, p.Ledger, p.Client, p.Client)
}

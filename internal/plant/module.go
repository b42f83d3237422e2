package plant

import (
	"go.uber.org/fx"

	"github.com/verdora/ecotrade/internal/domain/repository"
	"github.com/verdora/ecotrade/internal/ledger"
)

// Module provides the plant lifecycle to the fx container.
var Module = fx.Provide(newLifecycle)

type lifecycleParams struct {
	fx.In

	Plants repository.PlantRepository
	Orders repository.OrderRepository
	Ledger *ledger.PointsLedger
}

func newLifecycle(p lifecycleParams) *Lifecycle {
	return NewLifecycle(p.Plants, p.Orders, p.Ledger)
}

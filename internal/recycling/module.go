package recycling

import (
	"go.uber.org/fx"

	"github.com/verdora/ecotrade/internal/domain/repository"
	"github.com/verdora/ecotrade/internal/ledger"
)

// Module provides the recycling service to the fx container.
var Module = fx.Provide(newService)

type serviceParams struct {
	fx.In

	Submissions repository.RecyclingRepository
	Ledger      *ledger.PointsLedger
}

func newService(p serviceParams) *Service {
	return NewService(p.Submissions, p.Ledger)
}

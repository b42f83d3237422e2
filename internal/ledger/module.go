package ledger

import "go.uber.org/fx"

// Module provides the points ledger to the fx container.
var Module = fx.Provide(New)

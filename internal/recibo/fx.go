package recibo

import "go.uber.org/fx"

var Module = fx.Module("recibo",
	fx.Provide(NewService),
)

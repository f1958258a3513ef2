package extract

import "go.uber.org/fx"

var Module = fx.Module("extract.module",
	fx.Provide(
		NewService,
	),
)

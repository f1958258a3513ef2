package dataset

import "go.uber.org/fx"

var Module = fx.Module("dataset.module",
	fx.Provide(
		NewGenerator,
		NewService,
	),
)

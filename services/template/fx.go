package template

import "go.uber.org/fx"

var Module = fx.Module("template.module",
	fx.Provide(
		NewService,
	),
)

package workerpool

import (
	"context"

	"datasetforge/pkg/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("workerpool", fx.Provide(registerPool))

func registerPool(lc fx.Lifecycle, cfg *config.Config) *Pool {
	pool := New(cfg.Worker.Count, cfg.Worker.QueueSize)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			zap.L().Info("Stopping worker pool...")
			pool.Stop()
			return nil
		},
	})

	return pool
}

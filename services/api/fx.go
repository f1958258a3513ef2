package api

import (
	"os"

	"datasetforge/pkg/config"
	"datasetforge/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("api.module",
	fx.Provide(
		NewEngine,
		NewHandler,
	),
	fx.Invoke(
		ensureDirs,
		registerRoutes,
	),
)

func NewEngine(cfg *config.Config) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Error())
	return r
}

func ensureDirs(cfg *config.Config) {
	for _, dir := range []string{cfg.Storage.UploadDir, cfg.Storage.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			zap.L().Error("failed to create storage directory", zap.String("dir", dir), zap.Error(err))
		}
	}
}

func registerRoutes(r *gin.Engine, h *Handler) {
	h.Register(r)
}

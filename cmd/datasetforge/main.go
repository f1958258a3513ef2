package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"datasetforge/pkg/config"
	"datasetforge/pkg/health"
	"datasetforge/pkg/llm"
	"datasetforge/pkg/logger"
	"datasetforge/pkg/server"
	"datasetforge/pkg/workerpool"
	"datasetforge/services/api"
	"datasetforge/services/dataset"
	"datasetforge/services/extract"
	"datasetforge/services/task"
	"datasetforge/services/template"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		config.Module,
		logger.Module,
		llm.Module,
		workerpool.Module,
		extract.Module,
		dataset.Module,
		template.Module,
		task.Module,
		health.Module,
		api.Module,
		server.Module,
		fxLogger,
	)

	app.Run()
}

var fxLogger = fx.WithLogger(func() fxevent.Logger {
	return fxevent.NopLogger
})

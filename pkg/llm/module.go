package llm

import (
	"net/http"

	"datasetforge/pkg/config"

	"go.uber.org/fx"
)

var Module = fx.Module("llm", fx.Provide(registerRouter))

func registerRouter(cfg *config.Config) *Router {
	// Bounded wait on the model call so an unresponsive endpoint can
	// not starve a worker indefinitely.
	client := &http.Client{Timeout: cfg.Model.Timeout}

	router := NewRouter(cfg.Model.Provider)
	router.RegisterProvider("ollama", NewOllamaAdapter(OllamaConfig{
		Endpoint: cfg.Model.Endpoint,
		Client:   client,
	}))
	router.RegisterProvider("openai", NewOpenAIAdapter(OpenAIConfig{
		Endpoint: cfg.Model.Endpoint,
		APIKey:   cfg.Model.APIKey,
		Client:   client,
	}))

	return router
}

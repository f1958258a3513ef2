package llm

import (
	"context"
	"fmt"
	"sync"
)

// Router dispatches completion requests to registered providers.
type Router struct {
	mu              sync.RWMutex
	defaultProvider string
	providers       map[string]ProviderAdapter
}

// NewRouter creates a router with a default provider.
func NewRouter(defaultProvider string) *Router {
	return &Router{
		defaultProvider: defaultProvider,
		providers:       map[string]ProviderAdapter{},
	}
}

// RegisterProvider adds a provider adapter.
func (r *Router) RegisterProvider(name string, adapter ProviderAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = adapter
}

// Complete calls the selected provider.
func (r *Router) Complete(ctx context.Context, req CompletionRequest) (Response, error) {
	provider := req.Provider
	if provider == "" {
		provider = r.defaultProvider
	}
	r.mu.RLock()
	adapter, ok := r.providers[provider]
	r.mu.RUnlock()
	if !ok {
		return Response{}, fmt.Errorf("provider not registered: %s", provider)
	}
	return adapter.Complete(ctx, req)
}

package llm

import (
	"context"
	"fmt"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the standard request to a provider.
type CompletionRequest struct {
	Messages    []Message
	Model       string
	Provider    string
	Temperature float64
	MaxTokens   int
}

// Response is the model response.
type Response struct {
	Content string
}

// ProviderAdapter is implemented by model providers.
type ProviderAdapter interface {
	Complete(ctx context.Context, req CompletionRequest) (Response, error)
}

// ProviderError wraps provider failures, including non-2xx transport
// responses. Callers treat any ProviderError as a recoverable model
// failure, never as a hard fault.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

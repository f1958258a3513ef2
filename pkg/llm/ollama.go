package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultOllamaEndpoint = "http://127.0.0.1:11434"

// OllamaConfig configures the Ollama adapter.
type OllamaConfig struct {
	Endpoint string
	Client   *http.Client
}

// OllamaAdapter talks to a local Ollama daemon via its chat endpoint.
type OllamaAdapter struct {
	endpoint string
	client   *http.Client
}

func NewOllamaAdapter(cfg OllamaConfig) *OllamaAdapter {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = defaultOllamaEndpoint
	}
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaAdapter{endpoint: endpoint, client: client}
}

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message Message `json:"message"`
}

func (a *OllamaAdapter) Complete(ctx context.Context, req CompletionRequest) (Response, error) {
	body := ollamaChatRequest{
		Model:    req.Model,
		Messages: req.Messages,
		Stream:   false,
	}
	if req.Temperature > 0 || req.MaxTokens > 0 {
		body.Options = map[string]any{}
		if req.Temperature > 0 {
			body.Options["temperature"] = req.Temperature
		}
		if req.MaxTokens > 0 {
			body.Options["num_predict"] = req.MaxTokens
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, ProviderError{Provider: "ollama", Message: err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/api/chat", a.endpoint), bytes.NewReader(payload))
	if err != nil {
		return Response{}, ProviderError{Provider: "ollama", Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return Response{}, ProviderError{Provider: "ollama", Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, ProviderError{Provider: "ollama", Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, ProviderError{Provider: "ollama", StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var parsed ollamaChatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Response{}, ProviderError{Provider: "ollama", Message: err.Error()}
	}

	return Response{Content: parsed.Message.Content}, nil
}

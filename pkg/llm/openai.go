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

const defaultOpenAIEndpoint = "https://api.openai.com"

// OpenAIConfig configures the OpenAI-compatible adapter.
type OpenAIConfig struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

// OpenAIAdapter implements the chat-completions wire format, which a
// number of hosted and self-hosted providers expose.
type OpenAIAdapter struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewOpenAIAdapter(cfg OpenAIConfig) *OpenAIAdapter {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = defaultOpenAIEndpoint
	}
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenAIAdapter{endpoint: endpoint, apiKey: cfg.APIKey, client: client}
}

type openAIChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (a *OpenAIAdapter) Complete(ctx context.Context, req CompletionRequest) (Response, error) {
	payload, err := json.Marshal(openAIChatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return Response{}, ProviderError{Provider: "openai", Message: err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/v1/chat/completions", a.endpoint), bytes.NewReader(payload))
	if err != nil {
		return Response{}, ProviderError{Provider: "openai", Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return Response{}, ProviderError{Provider: "openai", Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, ProviderError{Provider: "openai", Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, ProviderError{Provider: "openai", StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var parsed openAIChatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Response{}, ProviderError{Provider: "openai", Message: err.Error()}
	}
	if len(parsed.Choices) == 0 {
		return Response{}, ProviderError{Provider: "openai", Message: "empty choices in response"}
	}

	return Response{Content: parsed.Choices[0].Message.Content}, nil
}

// Package adapter provides the OpenAI-compatible wire layer for remote
// language-model providers.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultPoeBaseURL is the default Poe API endpoint.
	DefaultPoeBaseURL = "https://api.poe.com/v1"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 60 * time.Second
)

// PoeAdapter implements Provider for the Poe API.
// Poe exposes an OpenAI-compatible chat completions endpoint, so no request
// or response translation is needed beyond authentication.
type PoeAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// PoeAdapterOption is a functional option for configuring PoeAdapter.
type PoeAdapterOption func(*PoeAdapter)

// WithBaseURL sets a custom base URL for the Poe API.
func WithBaseURL(url string) PoeAdapterOption {
	return func(p *PoeAdapter) {
		p.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) PoeAdapterOption {
	return func(p *PoeAdapter) {
		p.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) PoeAdapterOption {
	return func(p *PoeAdapter) {
		p.httpClient.Timeout = timeout
	}
}

// NewPoeAdapter creates a new PoeAdapter with the given API key.
func NewPoeAdapter(apiKey string, opts ...PoeAdapterOption) *PoeAdapter {
	p := &PoeAdapter{
		apiKey:  apiKey,
		baseURL: DefaultPoeBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the provider identifier.
func (p *PoeAdapter) Name() string {
	return "poe"
}

// ChatCompletion performs a chat completion request against the Poe API.
// It issues exactly one POST to {baseURL}/chat/completions and returns the
// decoded response envelope.
func (p *PoeAdapter) ChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to marshal poe request: %w", err)
	}

	url := p.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to execute poe request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to read poe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr ChatError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return ChatResponse{}, fmt.Errorf("poe API error [%d]: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return ChatResponse{}, fmt.Errorf("poe API error [%d]: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return ChatResponse{}, fmt.Errorf("failed to unmarshal poe response: %w", err)
	}

	return chatResp, nil
}

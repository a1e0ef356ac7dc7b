// Package adapter provides the OpenAI-compatible wire layer for remote
// language-model providers. It uses the Adapter pattern so the sampling core
// never depends on a concrete transport.
package adapter

import (
	"context"
)

// Provider defines the interface for chat-completion transports.
// All transport implementations must satisfy this interface.
type Provider interface {
	// ChatCompletion performs a single chat completion request.
	// Takes an OpenAI-compatible request and returns an OpenAI-compatible response.
	// Exactly one remote call per invocation; implementations do not retry.
	ChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error)

	// Name returns the provider's identifier string.
	Name() string
}

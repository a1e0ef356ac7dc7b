// Package adapter provides the OpenAI-compatible wire layer for remote
// language-model providers.
package adapter

// OpenAI-compatible chat completion request/response types.
// Only the fields this transport actually forwards are modeled; options with
// no wire equivalent (seed, per-call timeout) are intentionally absent.

// ChatRequest represents a chat completion request.
type ChatRequest struct {
	// Model names the remote bot/model the provider should route to.
	Model string `json:"model"`

	// Messages is the ordered conversation: always exactly one system
	// message followed by one user message in this system.
	Messages []ChatMessage `json:"messages"`

	// Temperature controls sampling randomness. Optional.
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxTokens limits the completion length. Optional.
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Stop lists terminator strings; omitted when empty.
	Stop []string `json:"stop,omitempty"`

	// Stream is always false; this transport consumes complete responses.
	Stream bool `json:"stream"`
}

// ChatMessage represents a single message in the conversation.
type ChatMessage struct {
	// Role is one of: "system", "user", "assistant".
	Role string `json:"role"`

	// Content is the message text content.
	Content string `json:"content"`
}

// ChatResponse represents a chat completion response envelope.
type ChatResponse struct {
	// ID is the unique identifier for this completion.
	ID string `json:"id"`

	// Object is always "chat.completion".
	Object string `json:"object"`

	// Created is the Unix timestamp of when the completion was created.
	Created int64 `json:"created"`

	// Model is the model that produced the completion.
	Model string `json:"model"`

	// Choices contains the generated completions. May be empty.
	Choices []ChatChoice `json:"choices"`

	// Usage contains token usage statistics.
	Usage ChatUsage `json:"usage"`
}

// ChatChoice represents a single completion choice.
type ChatChoice struct {
	// Index is the position of this choice in the list.
	Index int `json:"index"`

	// Message contains the generated message.
	Message ChatMessage `json:"message"`

	// FinishReason indicates why the model stopped generating.
	FinishReason string `json:"finish_reason"`
}

// ChatUsage contains token usage statistics.
type ChatUsage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the sum of prompt and completion tokens.
	TotalTokens int `json:"total_tokens"`
}

// ChatError represents an error response from OpenAI-compatible APIs.
type ChatError struct {
	Error ChatErrorDetail `json:"error"`
}

// ChatErrorDetail contains the error details.
type ChatErrorDetail struct {
	// Message is the human-readable error message.
	Message string `json:"message"`

	// Type categorizes the error (e.g., "invalid_request_error").
	Type string `json:"type"`

	// Code is the error code. Optional.
	Code string `json:"code,omitempty"`
}

// Package llmclient defines the shared contract for hosted language-model
// clients and provides the Poe-backed implementation.
package llmclient

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/opal-labs/poe-sampler/internal/adapter"
)

const (
	// EnvPoeAPIKey is the environment variable supplying the Poe credential.
	EnvPoeAPIKey = "POE_API_KEY"

	// systemPrompt is the fixed system turn prepended to every request.
	systemPrompt = "You are a helpful assistant."

	// callsBetweenSleeps is how many calls pass between pacing sleeps.
	callsBetweenSleeps = 10

	// pacingSleep is the fixed pacing delay.
	pacingSleep = 10 * time.Second
)

// PoeClient samples text from a Poe-hosted model.
//
// Parameter support: temperature, max_tokens, and terminators (as the stop
// list) are forwarded on the wire; seed and timeout have no equivalent
// through this transport and are accepted but ignored, so callers written
// against the base contract never get an error for passing them. Terminators
// are additionally enforced locally, since the remote stop support is not
// relied upon.
type PoeClient struct {
	model             string
	sleepPeriodically bool
	provider          adapter.Provider
	logger            *slog.Logger

	// calls counts every invocation, success or failure alike. The update is
	// atomic so one client may be shared across concurrent callers, though
	// pacing assumes sequential use.
	calls atomic.Int64

	// sleep is time.Sleep, overridable in tests.
	sleep func(time.Duration)
}

// PoeClientOption is a functional option for configuring PoeClient.
type PoeClientOption func(*PoeClient)

// WithAPIKey supplies the credential explicitly instead of reading the
// POE_API_KEY environment variable. Use this when configuration is loaded
// up front by the caller.
func WithAPIKey(apiKey string) PoeClientOption {
	return func(c *PoeClient) {
		if c.provider == nil && apiKey != "" {
			c.provider = adapter.NewPoeAdapter(apiKey)
		}
	}
}

// WithProvider sets a custom transport. Primarily used by tests and by
// callers that need a non-default base URL or HTTP client.
func WithProvider(p adapter.Provider) PoeClientOption {
	return func(c *PoeClient) {
		c.provider = p
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) PoeClientOption {
	return func(c *PoeClient) {
		c.logger = logger
	}
}

// NewPoeClient creates a client for the named Poe bot/model. The model name
// corresponds to the bot's name on poe.com (e.g. "Claude-3-Opus", "GPT-4").
// When sleepPeriodically is true, every tenth call sleeps to reduce the
// chance of provider-side rate limiting.
//
// Unless WithAPIKey or WithProvider is given, the credential is read from
// the POE_API_KEY environment variable; a missing credential is a fatal
// construction error, never a runtime one. Construction performs no network
// I/O.
func NewPoeClient(model string, sleepPeriodically bool, opts ...PoeClientOption) (*PoeClient, error) {
	c := &PoeClient{
		model:             model,
		sleepPeriodically: sleepPeriodically,
		logger:            slog.Default(),
		sleep:             time.Sleep,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.provider == nil {
		apiKey := os.Getenv(EnvPoeAPIKey)
		if apiKey == "" {
			return nil, &CredentialError{
				Var:  EnvPoeAPIKey,
				Hint: "Set it to your Poe API key from https://poe.com/api_key.",
			}
		}
		c.provider = adapter.NewPoeAdapter(apiKey)
	}

	return c, nil
}

// SampleText sends the prompt as a single independent completion and returns
// the resulting text, truncated at the earliest caller-supplied terminator.
//
// Any transport failure (connection error, authentication rejection, unknown
// bot name, provider-side error) is logged and collapsed into an empty
// string; it is never re-raised. Callers therefore cannot distinguish
// "failed" from "empty success": both mean no usable text came back.
func (c *PoeClient) SampleText(ctx context.Context, prompt string, opts ...SampleOption) string {
	o := NewSampleOptions(opts...)

	n := c.calls.Add(1)
	if c.sleepPeriodically && n%callsBetweenSleeps == 0 {
		c.logger.Info("pacing sleep to respect provider rate limits",
			slog.Duration("duration", pacingSleep),
			slog.Int64("calls", n),
		)
		c.sleep(pacingSleep)
	}

	text, err := c.sample(ctx, prompt, o)
	if err != nil {
		c.logger.Error("poe sample failed",
			slog.String("error", err.Error()),
			slog.String("model", c.model),
			slog.String("prompt", prompt),
		)
		return ""
	}
	if text == "" {
		return ""
	}

	return Truncate(text, o.Terminators)
}

// sample performs the single remote call and extracts the raw text. A missing
// or empty completion is not an error; it yields "" so the caller-facing
// contract stays uniform. Seed and timeout are dropped here: the wire has no
// field for either.
func (c *PoeClient) sample(ctx context.Context, prompt string, o SampleOptions) (string, error) {
	req := adapter.ChatRequest{
		Model: c.model,
		Messages: []adapter.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}
	if o.Temperature >= 0 {
		temp := o.Temperature
		req.Temperature = &temp
	}
	if o.MaxTokens > 0 {
		maxTokens := o.MaxTokens
		req.MaxTokens = &maxTokens
	}
	if len(o.Terminators) > 0 {
		req.Stop = o.Terminators
	}

	resp, err := c.provider.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured bot/model identifier.
func (c *PoeClient) Model() string {
	return c.model
}

// Calls returns how many times SampleText has been invoked.
func (c *PoeClient) Calls() int64 {
	return c.calls.Load()
}

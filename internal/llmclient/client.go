// Package llmclient defines the shared contract for hosted language-model
// clients and provides the Poe-backed implementation.
// All provider clients are interchangeable behind the Client interface.
package llmclient

import (
	"context"
	"time"
)

// Default values for sampling options. Every client in the family documents
// the same defaults so callers can switch backends without changing behavior.
const (
	// DefaultMaxTokens is the default upper bound on completion length.
	DefaultMaxTokens = 4096

	// DefaultTemperature is the default sampling temperature.
	DefaultTemperature = 0.8

	// DefaultTimeout is the default per-call timeout. Backends that cannot
	// honor a per-call timeout fall back to their transport's own timeout.
	DefaultTimeout = 60 * time.Second
)

// Client is the interface every provider adapter must satisfy.
// SampleText performs one independent, context-free completion: the prompt is
// sent as a single user turn, no conversation history is carried across calls.
//
// The empty string means "no usable text": the call failed, or the provider
// returned no content. Callers must treat both the same way; the contract
// deliberately does not distinguish them.
type Client interface {
	SampleText(ctx context.Context, prompt string, opts ...SampleOption) string
}

// SampleOptions holds the per-call sampling parameters.
// Every field is best-effort: a backend forwards it, silently drops it, or
// emulates it locally, and documents which. Unsupported options never cause
// an error.
type SampleOptions struct {
	// MaxTokens limits the completion length.
	MaxTokens int

	// Terminators are stop substrings. Generation is truncated at the
	// earliest occurrence of any of them; an empty set means no truncation.
	Terminators []string

	// Temperature controls sampling randomness.
	Temperature float64

	// Timeout is the desired per-call timeout.
	Timeout time.Duration

	// Seed requests reproducible sampling. Nil means no preference.
	Seed *int
}

// SampleOption mutates SampleOptions.
type SampleOption func(*SampleOptions)

// WithMaxTokens sets the completion length limit.
func WithMaxTokens(n int) SampleOption {
	return func(o *SampleOptions) {
		o.MaxTokens = n
	}
}

// WithTerminators sets the stop substrings.
func WithTerminators(terminators ...string) SampleOption {
	return func(o *SampleOptions) {
		o.Terminators = terminators
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) SampleOption {
	return func(o *SampleOptions) {
		o.Temperature = t
	}
}

// WithTimeout sets the desired per-call timeout.
func WithTimeout(d time.Duration) SampleOption {
	return func(o *SampleOptions) {
		o.Timeout = d
	}
}

// WithSeed requests a reproducible sample.
func WithSeed(seed int) SampleOption {
	return func(o *SampleOptions) {
		o.Seed = &seed
	}
}

// NewSampleOptions applies the given options on top of the documented
// defaults. The default terminator set is empty.
func NewSampleOptions(opts ...SampleOption) SampleOptions {
	o := SampleOptions{
		MaxTokens:   DefaultMaxTokens,
		Terminators: nil,
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

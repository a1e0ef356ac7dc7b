// Package handler provides HTTP handlers for the sampling service.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opal-labs/poe-sampler/internal/llmclient"
	"github.com/opal-labs/poe-sampler/internal/ui"
)

// SampleRequest is the request body for POST /v1/sample.
// Every option is best-effort: seed and timeout_seconds are accepted for
// base-contract compatibility even though the Poe transport ignores them.
type SampleRequest struct {
	// Prompt is the text to complete. May be empty, must be present.
	Prompt *string `json:"prompt"`

	// MaxTokens limits the completion length. Optional.
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Terminators are stop substrings enforced on the result. Optional.
	Terminators []string `json:"terminators,omitempty"`

	// Temperature controls sampling randomness. Optional.
	Temperature *float64 `json:"temperature,omitempty"`

	// TimeoutSeconds is the desired per-call timeout. Optional, ignored.
	TimeoutSeconds *int `json:"timeout_seconds,omitempty"`

	// Seed requests reproducible sampling. Optional, ignored.
	Seed *int `json:"seed,omitempty"`
}

// SampleResponse is the response body for POST /v1/sample.
// An empty text means "no usable answer": the remote call failed or the
// provider returned nothing; the two are indistinguishable here.
type SampleResponse struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// SampleHandler serves sampling requests backed by a single client.
type SampleHandler struct {
	client llmclient.Client
	model  string
	logger *slog.Logger
	usage  *UsageTracker
}

// SampleHandlerOption is a functional option for configuring SampleHandler.
type SampleHandlerOption func(*SampleHandler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) SampleHandlerOption {
	return func(h *SampleHandler) {
		h.logger = logger
	}
}

// WithUsageTracker sets a custom usage tracker.
func WithUsageTracker(usage *UsageTracker) SampleHandlerOption {
	return func(h *SampleHandler) {
		h.usage = usage
	}
}

// NewSampleHandler creates a new SampleHandler. model is reported back in
// responses and on GET /v1/model.
func NewSampleHandler(client llmclient.Client, model string, opts ...SampleHandlerOption) *SampleHandler {
	h := &SampleHandler{
		client: client,
		model:  model,
		logger: slog.Default(),
		usage:  NewUsageTracker(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// HandleSample handles POST /v1/sample.
// The response is always 200 once the body parses; transport failures have
// already been collapsed into an empty text by the client.
func (h *SampleHandler) HandleSample(c *gin.Context) {
	var req SampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid_request_error", "Invalid request body: "+err.Error())
		return
	}
	if req.Prompt == nil {
		h.sendError(c, http.StatusBadRequest, "invalid_request_error", "prompt is required")
		return
	}

	opts := buildSampleOptions(req)

	start := time.Now()
	text := h.client.SampleText(c.Request.Context(), *req.Prompt, opts...)
	latency := time.Since(start)

	if text == "" {
		ui.PrintEmptyResult(h.model)
	}

	metrics := h.usage.Record(*req.Prompt, text)
	h.logger.Info("sample completed",
		slog.String("model", h.model),
		slog.Int("prompt_chars", len(*req.Prompt)),
		slog.Int("result_chars", len(text)),
		slog.Bool("empty_result", text == ""),
		slog.Duration("latency", latency),
		slog.Int("est_prompt_tokens", metrics.PromptTokens),
		slog.Int("est_completion_tokens", metrics.CompletionTokens),
	)

	c.Set("empty_result", text == "")

	c.JSON(http.StatusOK, SampleResponse{
		Text:  text,
		Model: h.model,
	})
}

// buildSampleOptions maps the wire request onto client options. Absent fields
// keep the base-contract defaults; seed and timeout are passed along so the
// acceptance contract holds even though the backend drops them.
func buildSampleOptions(req SampleRequest) []llmclient.SampleOption {
	var opts []llmclient.SampleOption
	if req.MaxTokens != nil {
		opts = append(opts, llmclient.WithMaxTokens(*req.MaxTokens))
	}
	if len(req.Terminators) > 0 {
		opts = append(opts, llmclient.WithTerminators(req.Terminators...))
	}
	if req.Temperature != nil {
		opts = append(opts, llmclient.WithTemperature(*req.Temperature))
	}
	if req.TimeoutSeconds != nil {
		opts = append(opts, llmclient.WithTimeout(time.Duration(*req.TimeoutSeconds)*time.Second))
	}
	if req.Seed != nil {
		opts = append(opts, llmclient.WithSeed(*req.Seed))
	}
	return opts
}

// sendError sends an error response in OpenAI-compatible format.
func (h *SampleHandler) sendError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"message": message,
			"type":    errType,
			"code":    nil,
		},
	})
}

// HandleModel handles GET /v1/model.
// Returns the configured bot/model identifier.
func (h *SampleHandler) HandleModel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"object":   "model",
		"id":       h.model,
		"owned_by": "poe",
	})
}

// HandleHealth handles GET /health.
// Returns server health status and cumulative usage estimates.
func (h *SampleHandler) HandleHealth(c *gin.Context) {
	prompt, completion, samples := h.usage.Totals()
	c.JSON(http.StatusOK, gin.H{
		"status":                "healthy",
		"model":                 h.model,
		"samples":               samples,
		"est_prompt_tokens":     prompt,
		"est_completion_tokens": completion,
	})
}

// Package main provides end-to-end tests for the poe-sampler server.
// These tests exercise the complete flow: HTTP client → router → sampling
// client → mocked Poe provider.
package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/opal-labs/poe-sampler/internal/adapter"
	"github.com/opal-labs/poe-sampler/internal/handler"
	"github.com/opal-labs/poe-sampler/internal/llmclient"
)

// newMockPoeServer simulates the Poe chat completions endpoint.
// Behavior is keyed on the incoming bearer token:
//   - "KEY_OK"    → 200 with a fixed completion
//   - "KEY_AUTH"  → 401 Unauthorized
//   - "KEY_ERROR" → 500 Internal Server Error
//   - "KEY_EMPTY" → 200 with no choices
func newMockPoeServer(requests *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			atomic.AddInt32(requests, 1)
		}

		w.Header().Set("Content-Type", "application/json")

		switch r.Header.Get("Authorization") {
		case "Bearer KEY_OK":
			json.NewEncoder(w).Encode(adapter.ChatResponse{
				ID:     "chatcmpl-e2e",
				Object: "chat.completion",
				Model:  "Claude-3-Opus",
				Choices: []adapter.ChatChoice{
					{
						Message:      adapter.ChatMessage{Role: "assistant", Content: "Hello there. STOP now ignore this"},
						FinishReason: "stop",
					},
				},
			})

		case "Bearer KEY_AUTH":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(adapter.ChatError{
				Error: adapter.ChatErrorDetail{
					Message: "Invalid API key",
					Type:    "authentication_error",
				},
			})

		case "Bearer KEY_ERROR":
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(adapter.ChatError{
				Error: adapter.ChatErrorDetail{
					Message: "Internal server error",
					Type:    "server_error",
				},
			})

		case "Bearer KEY_EMPTY":
			json.NewEncoder(w).Encode(adapter.ChatResponse{
				ID:      "chatcmpl-empty",
				Object:  "chat.completion",
				Choices: []adapter.ChatChoice{},
			})
		}
	}))
}

// setupTestRouter wires a full router backed by the mock provider.
func setupTestRouter(t *testing.T, apiKey, baseURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider := adapter.NewPoeAdapter(apiKey, adapter.WithBaseURL(baseURL))
	client, err := llmclient.NewPoeClient("Claude-3-Opus", false,
		llmclient.WithProvider(provider),
		llmclient.WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("NewPoeClient() error = %v", err)
	}

	h := handler.NewSampleHandler(client, "Claude-3-Opus", handler.WithLogger(logger))
	cache := handler.NewSampleCache(handler.WithCacheLogger(logger))

	router := gin.New()
	router.Use(handler.RecoveryMiddleware(logger))
	router.Use(handler.CacheMiddleware(cache, logger))
	router.POST("/v1/sample", h.HandleSample)
	router.GET("/health", h.HandleHealth)
	return router
}

func doSample(t *testing.T, router *gin.Engine, body string) (*httptest.ResponseRecorder, handler.SampleResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/sample", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp handler.SampleResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestE2E_SuccessfulSampleWithTruncation(t *testing.T) {
	server := newMockPoeServer(nil)
	defer server.Close()

	router := setupTestRouter(t, "KEY_OK", server.URL)
	w, resp := doSample(t, router, `{"prompt": "Hello", "terminators": ["STOP"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Text != "Hello there. " {
		t.Errorf("text = %q, want %q", resp.Text, "Hello there. ")
	}
	if resp.Model != "Claude-3-Opus" {
		t.Errorf("model = %s, want Claude-3-Opus", resp.Model)
	}
}

func TestE2E_AuthFailureYieldsEmptyText(t *testing.T) {
	server := newMockPoeServer(nil)
	defer server.Close()

	router := setupTestRouter(t, "KEY_AUTH", server.URL)
	w, resp := doSample(t, router, `{"prompt": "Hello"}`)

	// Provider failures never surface as HTTP errors; callers see only
	// an empty text.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Text != "" {
		t.Errorf("text = %q, want empty string", resp.Text)
	}
}

func TestE2E_ProviderErrorYieldsEmptyText(t *testing.T) {
	server := newMockPoeServer(nil)
	defer server.Close()

	router := setupTestRouter(t, "KEY_ERROR", server.URL)
	w, resp := doSample(t, router, `{"prompt": "Hello"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Text != "" {
		t.Errorf("text = %q, want empty string", resp.Text)
	}
}

func TestE2E_EmptyChoicesYieldsEmptyText(t *testing.T) {
	server := newMockPoeServer(nil)
	defer server.Close()

	router := setupTestRouter(t, "KEY_EMPTY", server.URL)
	_, resp := doSample(t, router, `{"prompt": "Hello"}`)

	if resp.Text != "" {
		t.Errorf("text = %q, want empty string for choice-less response", resp.Text)
	}
}

func TestE2E_DeadProviderYieldsEmptyText(t *testing.T) {
	server := newMockPoeServer(nil)
	server.Close() // connection refused from here on

	router := setupTestRouter(t, "KEY_OK", server.URL)
	w, resp := doSample(t, router, `{"prompt": "Hello"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.Text != "" {
		t.Errorf("text = %q, want empty string when transport is down", resp.Text)
	}
}

func TestE2E_CacheAvoidsSecondProviderCall(t *testing.T) {
	var requests int32
	server := newMockPoeServer(&requests)
	defer server.Close()

	router := setupTestRouter(t, "KEY_OK", server.URL)

	body := `{"prompt": "Hello", "terminators": ["STOP"]}`
	doSample(t, router, body)
	_, resp := doSample(t, router, body)

	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Errorf("provider requests = %d, want 1 (second served from cache)", got)
	}
	if resp.Text != "Hello there. " {
		t.Errorf("cached text = %q, want %q", resp.Text, "Hello there. ")
	}
}

func TestE2E_HealthEndpoint(t *testing.T) {
	server := newMockPoeServer(nil)
	defer server.Close()

	router := setupTestRouter(t, "KEY_OK", server.URL)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var health map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("invalid health JSON: %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", health["status"])
	}
}

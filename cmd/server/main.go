// Package main is the entry point for the poe-sampler server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opal-labs/poe-sampler/internal/adapter"
	"github.com/opal-labs/poe-sampler/internal/config"
	"github.com/opal-labs/poe-sampler/internal/handler"
	"github.com/opal-labs/poe-sampler/internal/llmclient"
	"github.com/opal-labs/poe-sampler/internal/security"
	"github.com/opal-labs/poe-sampler/internal/ui"
)

func main() {
	// =========================================================================
	// 1. Setup structured logger (JSON format, credential redaction)
	// =========================================================================
	logger := setupLogger()

	logger.Info("starting poe-sampler")

	// =========================================================================
	// 2. Load configuration (Singleton)
	// =========================================================================
	cfg, err := config.GetConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.String("model", cfg.Sampler.Model),
		slog.Bool("sleep_periodically", cfg.Sampler.SleepPeriodically),
	)

	ui.PrintBanner(cfg.Sampler.Model)

	// =========================================================================
	// 3. Build the Poe transport and sampling client
	// =========================================================================
	adapterOpts := []adapter.PoeAdapterOption{
		adapter.WithTimeout(time.Duration(cfg.Sampler.TimeoutSeconds) * time.Second),
	}
	if cfg.Sampler.BaseURL != "" {
		adapterOpts = append(adapterOpts, adapter.WithBaseURL(cfg.Sampler.BaseURL))
	}
	provider := adapter.NewPoeAdapter(cfg.Sampler.APIKey, adapterOpts...)

	client, err := llmclient.NewPoeClient(cfg.Sampler.Model, cfg.Sampler.SleepPeriodically,
		llmclient.WithProvider(provider),
		llmclient.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create poe client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ui.PrintInfo(fmt.Sprintf("sampling client ready (provider: %s)", provider.Name()))

	// =========================================================================
	// 4. Create SampleHandler and response cache
	// =========================================================================
	usage := handler.NewUsageTracker()
	sampleHandler := handler.NewSampleHandler(
		client,
		cfg.Sampler.Model,
		handler.WithLogger(logger),
		handler.WithUsageTracker(usage),
	)
	cache := handler.NewSampleCache(handler.WithCacheLogger(logger))

	// =========================================================================
	// 5. Setup Gin router with middleware
	// =========================================================================
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Apply middleware
	router.Use(handler.RecoveryMiddleware(logger))
	router.Use(handler.CORSMiddleware())
	router.Use(handler.LoggingMiddleware(logger))
	router.Use(handler.CacheMiddleware(cache, logger))

	// Register routes
	router.POST("/v1/sample", sampleHandler.HandleSample)
	router.GET("/v1/model", sampleHandler.HandleModel)
	router.GET("/health", sampleHandler.HandleHealth)

	// =========================================================================
	// 6. Start HTTP server with graceful shutdown
	// =========================================================================
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			slog.String("address", addr),
		)
		fmt.Printf("\n🚀 poe-sampler is running at http://%s\n", addr)
		fmt.Printf("   Endpoints:\n")
		fmt.Printf("   • POST /v1/sample - Sample text from the configured model\n")
		fmt.Printf("   • GET  /v1/model  - Show the configured model\n")
		fmt.Printf("   • GET  /health    - Health check\n\n")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// =========================================================================
	// 7. Graceful shutdown on SIGTERM/SIGINT
	// =========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	fmt.Println("\n⏳ Shutting down gracefully...")

	// Create shutdown context with timeout
	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	prompt, completion, samples := usage.Totals()
	ui.PrintUsage(prompt, completion, samples)

	logger.Info("server stopped gracefully")
	fmt.Println("✅ Server stopped. Goodbye!")
}

// setupLogger creates a structured JSON logger based on config.
// All output passes through the redacting handler so credentials embedded in
// prompts or errors never reach the log stream.
func setupLogger() *slog.Logger {
	// Try to get config for log level, default to info
	level := slog.LevelInfo

	// Check environment variable for log level
	if envLevel := os.Getenv("POE_SAMPLER_LOGGING_LEVEL"); envLevel != "" {
		switch envLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// JSON format for structured logging, wrapped with redaction
	handler := security.NewRedactedHandler(slog.NewJSONHandler(os.Stdout, opts))
	logger := slog.New(handler)

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}

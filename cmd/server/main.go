package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freshlaundry/website/internal"
	"github.com/freshlaundry/website/internal/handler"
	"github.com/freshlaundry/website/internal/intake"
	"github.com/freshlaundry/website/internal/metrics"
	"github.com/freshlaundry/website/internal/middleware"
	"github.com/freshlaundry/website/internal/session"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	isSecure := cfg.Env != "development"

	// Initialize template renderer
	renderer, err := handler.NewRenderer(handler.RendererConfig{
		TemplatesDir: "web/templates",
		Logger:       logger,
		IsDev:        cfg.Env == "development",
	})
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}

	// Initialize session store for in-flight modal state
	sessions := session.NewStore(cfg.SessionTTL)

	// Initialize middleware
	csrfMw := middleware.NewCSRFMiddleware(logger)
	limiter := middleware.NewRateLimiter(cfg.RateLimitMaxAttempts, cfg.RateLimitWindow, logger)
	rateLimitMw := middleware.NewRateLimitMiddleware(limiter, logger)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	// Initialize handlers
	homeHandler := handler.NewHomeHandler(renderer, logger, cfg.DefaultFidelity, isSecure)
	quoteHandler := handler.NewFlowHandler(intake.QuoteFlow(), renderer, sessions, logger, cfg.DefaultFidelity, isSecure)
	pickupHandler := handler.NewFlowHandler(intake.PickupFlow(), renderer, sessions, logger, cfg.DefaultFidelity, isSecure)
	contactHandler := handler.NewContactHandler(renderer, logger, cfg.DefaultFidelity, isSecure)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	staticFS := http.FileServer(http.Dir("web/static"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticFS))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics, behind basic auth when configured
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// State-changing form endpoints get CSRF checks and rate limiting
	protect := middleware.Stack(rateLimitMw.Limit, csrfMw.RequireToken)

	homeHandler.RegisterRoutes(mux)
	quoteHandler.RegisterRoutes(mux, protect)
	pickupHandler.RegisterRoutes(mux, protect)
	contactHandler.RegisterRoutes(mux, protect)

	// Anything the routes above don't match falls through to a mapped 404.
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.NotFoundResponse(w, r, logger)
	}))

	// Global middleware stack, outermost first
	root := middleware.Stack(
		securityMw.Handler,
		loggingMw.Handler,
		metrics.Middleware,
	)(mux)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: root,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env, "fidelity", cfg.DefaultFidelity)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

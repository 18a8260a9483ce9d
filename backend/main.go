// ABOUTME: Entry point for the tenant pool sizer backend service
// ABOUTME: Serves the storage pool sizing calculators over HTTP

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markalston/tenant-pool-sizer/backend/cache"
	"github.com/markalston/tenant-pool-sizer/backend/config"
	"github.com/markalston/tenant-pool-sizer/backend/handlers"
	"github.com/markalston/tenant-pool-sizer/backend/logger"
	"github.com/markalston/tenant-pool-sizer/backend/middleware"
	"github.com/markalston/tenant-pool-sizer/backend/models"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Tenant Pool Sizer Backend")
	slog.Info("Sizing defaults", "default_parity", cfg.DefaultParity)
	if len(cfg.CORSAllowedOrigins) == 0 {
		slog.Info("CORS disabled, cross-origin requests will be blocked")
	} else {
		slog.Info("CORS enabled", "origins", cfg.CORSAllowedOrigins)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize plan cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	planCache := cache.New[models.PlanResponse](ctx, cacheTTL)
	slog.Info("Plan cache initialized", "ttl", cacheTTL)

	h := handlers.NewHandler(cfg, planCache)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newMux(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// newMux registers every API route behind the middleware chain:
// CORS -> logging -> body limit -> handler.
func newMux(cfg *config.Config, h *handlers.Handler) *http.ServeMux {
	cors := middleware.CORSWithConfig(cfg.CORSAllowedOrigins)
	limit := middleware.LimitBody(cfg.MaxRequestBytes)

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		handler := middleware.Chain(route.Handler, cors, middleware.LogRequest, limit)
		mux.HandleFunc(route.Method+" "+route.Path, handler)
		// Preflight requests carry OPTIONS regardless of the route's method
		mux.HandleFunc(http.MethodOptions+" "+route.Path, cors(route.Handler))
	}
	return mux
}

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

	"github.com/joho/godotenv"

	"github.com/vntrieu/chatbackend/internal/config"
	"github.com/vntrieu/chatbackend/internal/httpapi"
	"github.com/vntrieu/chatbackend/internal/metrics"
	"github.com/vntrieu/chatbackend/internal/preview"
	"github.com/vntrieu/chatbackend/internal/ratelimit"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger(os.Stdout))

	// Rate limiting is off unless CHAT_RATE_LIMIT is set.
	var limiter ratelimit.Limiter
	if cfg.RateLimit > 0 {
		limiter = httpapi.DefaultRateLimiter(cfg.RateLimit)
	}

	router := httpapi.NewRouter(httpapi.Options{
		AllowedOrigin: cfg.AllowedOrigin,
		MaxBodyBytes:  cfg.MaxBodyBytes,
		PublicAppURL:  cfg.PublicAppURL,
		Previews:      preview.NewStore(),
		RateLimiter:   limiter,
		Metrics:       metrics.New(),
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("chat backend listening",
			"addr", cfg.HTTPAddr,
			"allowed_origin", cfg.AllowedOrigin,
			"rate_limit_per_min", cfg.RateLimit,
			"max_body_bytes", cfg.MaxBodyBytes,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("http server error", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		return
	}
	slog.Info("server stopped")
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/swaggo/http-swagger"
	"github.com/vntrieu/chatbackend/internal/config"
	"github.com/vntrieu/chatbackend/internal/httpapi/handler"
	"github.com/vntrieu/chatbackend/internal/metrics"
	"github.com/vntrieu/chatbackend/internal/preview"
	"github.com/vntrieu/chatbackend/internal/ratelimit"

	_ "github.com/vntrieu/chatbackend/docs" // swag-generated docs
)

// Options configures NewRouter. Zero values fall back to the defaults below.
type Options struct {
	// AllowedOrigin is the only origin granted cross-origin access.
	AllowedOrigin string
	// MaxBodyBytes caps JSON request bodies under /api; 0 leaves them uncapped.
	MaxBodyBytes int64
	// PublicAppURL prefixes preview share links; empty falls back to AllowedOrigin.
	PublicAppURL string
	// Previews backs /api/preview; nil creates an empty store.
	Previews *preview.Store
	// RateLimiter limits POST /api/chat per client IP; nil disables limiting.
	RateLimiter ratelimit.Limiter
	// Metrics receives per-request observations and backs GET /metrics; nil creates a fresh registry.
	Metrics *metrics.Metrics
}

// NewRouter builds the root HTTP router with CORS, logging, metrics, and the chat routes.
//
// @title            Chat Backend API
// @version          1.0
// @description      Placeholder backend for the chat frontend: liveness, a stub chat endpoint and HTML previews.
// @BasePath         /
func NewRouter(opts Options) http.Handler {
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = config.DefaultAllowedOrigin
	}
	if opts.PublicAppURL == "" {
		opts.PublicAppURL = opts.AllowedOrigin
	}
	if opts.Previews == nil {
		opts.Previews = preview.NewStore()
	}
	if opts.RateLimiter == nil {
		opts.RateLimiter = ratelimit.Noop{}
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(opts.Metrics.Middleware)
	r.Use(CORS(opts.AllowedOrigin))
	r.Use(middleware.Recoverer)

	r.Get("/", handler.Root)
	r.Get("/healthz", handler.Healthz)
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	// Swagger UI and generated spec (from swag comments)
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/", http.StatusMovedPermanently)
	})
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	rateLimitByIP := RateLimitMiddleware(opts.RateLimiter, RateLimitKeyByIP)

	previewHandler := handler.NewPreviewHandler(opts.Previews, opts.PublicAppURL)

	r.Route("/api", func(r chi.Router) {
		if opts.MaxBodyBytes > 0 {
			r.Use(LimitRequestBody(opts.MaxBodyBytes))
		}
		r.With(rateLimitByIP).Post("/chat", handler.Chat)
		r.Get("/test", handler.TestStatus)
		r.Post("/test", handler.TestEcho)

		r.Post("/preview", previewHandler.Create)
		r.Get("/preview", previewHandler.Get)
		r.Put("/preview", previewHandler.Update)
	})

	return r
}

// DefaultRateLimiter returns an in-memory limiter allowing perMinute chat requests per IP.
// For multi-instance deployments, replace with a shared limiter.
func DefaultRateLimiter(perMinute int) ratelimit.Limiter {
	return ratelimit.NewInMemory(perMinute, time.Minute)
}

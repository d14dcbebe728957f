// Package api exposes the report services over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"location-reports/internal/logging"
	"location-reports/internal/middleware"
	"location-reports/internal/services"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig holds everything NewRouter needs.
type RouterConfig struct {
	Services *services.ServiceContainer
	Logger   *slog.Logger

	// Health reports whether the backing store is reachable. Nil means
	// always healthy.
	Health func(ctx context.Context) error

	CORSAllowedOrigins []string
	RateLimit          middleware.RateLimitConfig
	// RequestTimeout bounds each /v1 request. Zero disables it.
	RequestTimeout time.Duration
}

// Handler serves the /v1 resources.
type Handler struct {
	reports  services.ReportService
	registry services.RegistryService
	logger   *slog.Logger
}

// NewHandler creates a Handler over the given services.
func NewHandler(container *services.ServiceContainer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		reports:  container.ReportService,
		registry: container.RegistryService,
		logger:   logger,
	}
}

// NewRouter builds the HTTP handler. ctx bounds background work owned by
// the middleware stack.
func NewRouter(ctx context.Context, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	h := NewHandler(cfg.Services, logger)

	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Health != nil {
			if err := cfg.Health(r.Context()); err != nil {
				logger.Error("health check failed", "error", err)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RateLimiter(ctx, cfg.RateLimit))
		if cfg.RequestTimeout > 0 {
			r.Use(chimw.Timeout(cfg.RequestTimeout))
		}

		r.Route("/reports", func(r chi.Router) {
			r.Post("/", h.createReport)
			r.Get("/", h.searchReports)
			r.Get("/{id}", h.getReport)
			r.Delete("/{id}", h.deleteReport)
		})
		r.Route("/locations", func(r chi.Router) {
			r.Post("/", h.createLocation)
			r.Get("/", h.listLocations)
			r.Get("/{id}", h.getLocation)
		})
		r.Route("/agents", func(r chi.Router) {
			r.Post("/", h.createAgent)
			r.Get("/{id}", h.getAgent)
		})
	})

	return r
}

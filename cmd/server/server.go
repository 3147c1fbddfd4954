package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/Simplici0/bizcal/internal/observability"
	"github.com/Simplici0/bizcal/internal/planner"
	"github.com/Simplici0/bizcal/internal/presets"
)

type presetCatalog interface {
	List(ctx context.Context) ([]presets.Preset, error)
	Get(ctx context.Context, slug string) (presets.Preset, error)
}

// planDefaults fill in what a request leaves out.
type planDefaults struct {
	mode  planner.ModeName
	basis planner.DailyBasis
}

type server struct {
	log      zerolog.Logger
	presets  presetCatalog
	metrics  *observability.Metrics
	defaults planDefaults
	limiter  *rateLimiter
}

func newServer(log zerolog.Logger, catalog presetCatalog, metrics *observability.Metrics, defaults planDefaults) *server {
	if defaults.mode == "" {
		defaults.mode = planner.ModeGoal
	}
	if defaults.basis == 0 {
		defaults.basis = planner.WorkDays
	}
	return &server{
		log:      log.With().Str("component", "http").Logger(),
		presets:  catalog,
		metrics:  metrics,
		defaults: defaults,
	}
}

func (s *server) routes(devMode bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if !devMode {
		r.Use(middleware.Compress(5))
	}

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())
	r.Get("/plan/text", s.handlePlanText)

	r.Route("/api", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.middleware)
		}
		r.Post("/plan", s.handlePlan)
		r.Post("/plan/brief", s.handlePlanBrief)
		r.Get("/presets", s.handlePresetList)
		r.Get("/presets/{slug}/plan", s.handlePresetPlan)
	})

	return r
}

func (s *server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.RequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

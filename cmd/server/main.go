package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/bizcal/internal/config"
	"github.com/Simplici0/bizcal/internal/db"
	"github.com/Simplici0/bizcal/internal/logger"
	"github.com/Simplici0/bizcal/internal/migrations"
	"github.com/Simplici0/bizcal/internal/observability"
	"github.com/Simplici0/bizcal/internal/presets"
	"github.com/Simplici0/bizcal/internal/seed"
)

func init() {
	// Money fields are decimals; encode them as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		log.Fatal().Err(err).Msg("failed to run database migrations")
	}

	stats, err := seed.Run(database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed presets")
	}
	log.Info().Int("inserts", stats.Inserts).Int("updates", stats.Updates).Msg("presets seeded")

	srv := newServer(log, presets.NewStore(database), observability.NewMetrics(""), planDefaults{
		mode:  cfg.DefaultMode,
		basis: cfg.DailyBasis,
	})

	if cfg.RateLimitRPS > 0 {
		srv.limiter = newRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(cfg.IsDev()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("env", cfg.Env).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	shutdown(log, httpServer)
}

func shutdown(log zerolog.Logger, httpServer *http.Server) {
	log.Info().Msg("shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Simplici0/bizcal/internal/planner"
)

const (
	defaultDBPath   = ":memory:"
	defaultPort     = "8080"
	defaultLogLevel = "info"
	defaultEnv      = "dev"
	defaultBurst    = 20
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env         string
	Port        string
	DBPath      string
	LogLevel    string
	LogPretty   bool
	DailyBasis  planner.DailyBasis
	DefaultMode planner.ModeName

	// RateLimitRPS caps API requests per second per client IP. Zero disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads environment variables and returns a populated Config.
func Load() (Config, error) {
	// A missing .env is fine; production injects real environment variables.
	_ = godotenv.Load(".env")

	cfg := Config{
		Env:      getEnv("APP_ENV", defaultEnv),
		Port:     getEnv("PORT", defaultPort),
		DBPath:   getEnv("DB_PATH", defaultDBPath),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
	}

	pretty, err := getEnvAsBool("LOG_PRETTY", cfg.IsDev())
	if err != nil {
		return Config{}, err
	}
	cfg.LogPretty = pretty

	basis, err := planner.ParseDailyBasis(os.Getenv("DAILY_PERIOD_BASIS"))
	if err != nil {
		return Config{}, fmt.Errorf("DAILY_PERIOD_BASIS: %w", err)
	}
	cfg.DailyBasis = basis

	mode, err := planner.ParseMode(os.Getenv("DEFAULT_MODE"))
	if err != nil {
		return Config{}, fmt.Errorf("DEFAULT_MODE: %w", err)
	}
	cfg.DefaultMode = mode.Name()

	rps, err := getEnvAsFloat("RATE_LIMIT_RPS", 0)
	if err != nil {
		return Config{}, err
	}
	if rps < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	cfg.RateLimitRPS = rps

	burst, err := getEnvAsInt("RATE_LIMIT_BURST", defaultBurst)
	if err != nil {
		return Config{}, err
	}
	if burst < 1 {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST must be at least 1")
	}
	cfg.RateLimitBurst = burst

	return cfg, nil
}

// IsDev reports whether the application runs in a development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return value, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

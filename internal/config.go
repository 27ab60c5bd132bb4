package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Application base URL (used in absolute links on the page)
	BaseURL string

	// Which template set to serve when the visitor hasn't picked one.
	// "hifi" is the polished site, "lofi" the wireframe preview.
	DefaultFidelity string

	// Form session lifetime. Sessions are in-memory only; a stale session
	// simply means the visitor starts the modal over.
	SessionTTL time.Duration

	// Rate limiting for form POST endpoints
	RateLimitMaxAttempts int
	RateLimitWindow      time.Duration

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		// Base URL defaults to localhost for development
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		DefaultFidelity: getEnv("DEFAULT_FIDELITY", "hifi"),

		SessionTTL: getEnvDuration("SESSION_TTL", 30*time.Minute),

		// Generous defaults: these endpoints are cheap, the limiter only
		// guards against abusive scripted submissions.
		RateLimitMaxAttempts: getEnvInt("RATE_LIMIT_MAX_ATTEMPTS", 60),
		RateLimitWindow:      getEnvDuration("RATE_LIMIT_WINDOW", 1*time.Minute),

		// Metrics authentication
		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	if cfg.DefaultFidelity != "hifi" && cfg.DefaultFidelity != "lofi" {
		return nil, fmt.Errorf("DEFAULT_FIDELITY must be either 'hifi' or 'lofi', got: %s", cfg.DefaultFidelity)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

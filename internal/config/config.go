// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/candid-tools/grants-fetcher/pkg/client"
	"github.com/candid-tools/grants-fetcher/pkg/ratelimit"
	"github.com/candid-tools/grants-fetcher/pkg/searchstore"
)

// Config holds the full environment-derived configuration for the binary.
type Config struct {
	// APIKey authenticates against the Candid API. Required; startup
	// fails before any network use when it is missing.
	APIKey string `env:"CANDID_API_KEY,required,notEmpty"`

	// BaseURL overrides the transactions endpoint, mainly for testing.
	BaseURL string `env:"CANDID_BASE_URL"`

	// SavedSearchesDir is where named search configurations live.
	SavedSearchesDir string `env:"SAVED_SEARCHES_DIR"`

	// OutputDir is where result files are written.
	OutputDir string `env:"OUTPUT_DIR" envDefault:"."`

	// RequestDelay is the inter-request throttle spacing.
	RequestDelay time.Duration `env:"REQUEST_DELAY"`

	// RedisURL enables the response cache when set (host:port).
	RedisURL string `env:"REDIS_URL"`

	// CacheTTL is how long cached response pages stay fresh.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"15m"`

	// MetricsAddr serves /metrics when set (e.g. ":9090").
	MetricsAddr string `env:"METRICS_ADDR"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogPretty selects console-friendly log output.
	LogPretty bool `env:"LOG_PRETTY" envDefault:"true"`
}

// Load parses the environment into a Config and fills in defaults that
// depend on other packages.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = client.DefaultBaseURL
	}
	if cfg.SavedSearchesDir == "" {
		cfg.SavedSearchesDir = searchstore.DefaultDir
	}
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = ratelimit.DefaultInterval
	}

	return cfg, nil
}

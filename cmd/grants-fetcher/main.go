// Command grants-fetcher is the interactive client for the Candid grants
// transactions API. Configuration comes from the environment; see
// internal/config for the full variable list.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/candid-tools/grants-fetcher/internal/config"
	"github.com/candid-tools/grants-fetcher/internal/shell"
	"github.com/candid-tools/grants-fetcher/pkg/client"
	"github.com/candid-tools/grants-fetcher/pkg/logging"
	"github.com/candid-tools/grants-fetcher/pkg/pagination"
	"github.com/candid-tools/grants-fetcher/pkg/ratelimit"
	"github.com/candid-tools/grants-fetcher/pkg/results"
	"github.com/candid-tools/grants-fetcher/pkg/searchstore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "grants-fetcher",
		Short:         "Interactive client for the Candid grants transactions API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

func run() error {
	// Configuration is validated before anything touches the network;
	// a missing CANDID_API_KEY fails here.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
	})

	redisClient := connectRedis(cfg, logger)

	app, err := buildApp(cfg, redisClient)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}

// connectRedis opens the optional response cache backend. The fetcher
// works without a cache, so a failed connection downgrades to uncached
// operation instead of aborting startup.
func connectRedis(cfg config.Config, logger zerolog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.RedisURL).
			Msg("Redis unavailable, running without response cache")
		redisClient.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.RedisURL).Msg("Response cache enabled")
	return redisClient
}

// buildApp wires the client, throttle, pager, writer and store into the
// interactive shell.
func buildApp(cfg config.Config, redisClient *redis.Client) (*shell.Shell, error) {
	candid, err := client.New(client.Config{
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Redis:    redisClient,
		CacheTTL: cfg.CacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("create candid client: %w", err)
	}

	limiter := ratelimit.NewLimiter(cfg.RequestDelay, logging.NewLogger("throttle"))
	pager := pagination.NewPager(candid, limiter, pagination.Config{Delay: cfg.RequestDelay})

	return shell.New(shell.Options{
		In:             os.Stdin,
		Out:            os.Stdout,
		Probe:          candid,
		Pager:          pager,
		Writer:         results.NewWriter(cfg.OutputDir),
		Store:          searchstore.NewStore(cfg.SavedSearchesDir),
		AnimationDelay: 15 * time.Millisecond,
		ClearScreen:    true,
	}), nil
}

func serveMetrics(addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info().Str("addr", addr).Msg("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("Metrics server failed")
	}
}

package pagination

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/candid-tools/grants-fetcher/pkg/client"
	"github.com/candid-tools/grants-fetcher/pkg/logging"
	"github.com/candid-tools/grants-fetcher/pkg/ratelimit"
	"github.com/candid-tools/grants-fetcher/pkg/search"
)

// Prometheus metrics for pagination runs.
var (
	candidPagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "candid_pages_fetched_total",
		Help: "Total result pages fetched successfully",
	})

	candidGrantsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "candid_grants_fetched_total",
		Help: "Total grant rows accumulated across pagination runs",
	})

	candidPagesFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "candid_pages_failed_total",
		Help: "Total page fetches that failed and ended a pagination run",
	})
)

// PageFetcher is the interface the pager drives for single-page fetching.
// *client.Client implements it.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int, filter search.Filter) (*client.PageResult, error)
}

// Config holds pager configuration.
type Config struct {
	// Delay is the inter-request spacing used when the pager builds its
	// own throttle (default: ratelimit.DefaultInterval).
	Delay time.Duration
}

// DefaultConfig returns the quota-respecting default configuration.
func DefaultConfig() Config {
	return Config{
		Delay: ratelimit.DefaultInterval,
	}
}

// Pager fetches consecutive pages sequentially, one throttled request at
// a time.
type Pager struct {
	fetcher PageFetcher
	limiter *ratelimit.Limiter
	logger  zerolog.Logger
}

// NewPager creates a pager. A nil limiter gets one built from cfg.Delay so
// callers that don't share a throttle still respect the quota.
func NewPager(fetcher PageFetcher, limiter *ratelimit.Limiter, cfg Config) *Pager {
	logger := logging.NewLogger("pager")
	if limiter == nil {
		limiter = ratelimit.NewLimiter(cfg.Delay, logger)
	}
	return &Pager{
		fetcher: fetcher,
		limiter: limiter,
		logger:  logger,
	}
}

// FetchPages fetches numPages consecutive pages starting at startPage and
// returns the accumulated rows.
//
// A failed page ends the run immediately: the rows fetched so far are
// returned together with the error, and nothing is retried. Callers decide
// whether partial data is worth keeping; the shell writes it out.
func (p *Pager) FetchPages(ctx context.Context, startPage, numPages int, filter search.Filter) ([]json.RawMessage, error) {
	if startPage < 1 {
		return nil, fmt.Errorf("start page must be positive (got %d)", startPage)
	}
	if numPages < 1 {
		return nil, fmt.Errorf("page count must be positive (got %d)", numPages)
	}

	start := time.Now()
	lastPage := startPage + numPages - 1

	p.logger.Info().
		Int("start_page", startPage).
		Int("num_pages", numPages).
		Msg("Starting page fetch")

	var grants []json.RawMessage

	for page := startPage; page <= lastPage; page++ {
		if err := p.limiter.Wait(ctx); err != nil {
			p.logger.Warn().
				Err(err).
				Int("page", page).
				Msg("Fetch aborted while waiting on throttle")
			return grants, fmt.Errorf("throttle wait before page %d: %w", page, err)
		}

		result, err := p.fetcher.FetchPage(ctx, page, filter)
		if err != nil {
			candidPagesFailedTotal.Inc()
			p.logger.Error().
				Err(err).
				Int("page", page).
				Int("rows_accumulated", len(grants)).
				Msg("Page fetch failed - returning partial results")
			return grants, fmt.Errorf("fetch page %d: %w", page, err)
		}

		if len(result.Rows) == 0 {
			p.logger.Info().Int("page", page).Msg("No grants data found on page")
		}
		grants = append(grants, result.Rows...)

		candidPagesFetchedTotal.Inc()
		candidGrantsFetchedTotal.Add(float64(len(result.Rows)))

		p.logger.Debug().
			Int("page", page).
			Int("rows", len(result.Rows)).
			Int("rows_accumulated", len(grants)).
			Msg("Page fetched")
	}

	p.logger.Info().
		Int("pages", numPages).
		Int("rows", len(grants)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return grants, nil
}

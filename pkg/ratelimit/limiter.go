// Package ratelimit implements the fixed inter-request throttle the Candid
// API quota requires. The transactions endpoint allows 9 requests per 60
// seconds; spacing requests one interval apart keeps the client inside the
// quota without tracking a token bucket.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// DefaultInterval spaces requests to stay under 9 requests per 60 seconds.
const DefaultInterval = time.Minute / 9

// Prometheus metrics for throttle behavior.
var (
	candidThrottleWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "candid_throttle_waits_total",
		Help: "Total number of requests delayed by the inter-request throttle",
	})

	candidThrottleWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "candid_throttle_wait_seconds",
		Help:    "Time spent waiting on the inter-request throttle",
		Buckets: []float64{0.5, 1, 2, 5, 7, 10},
	})
)

// Limiter admits one request per interval. The first request is admitted
// immediately. Safe for use from a single goroutine; the mutex guards the
// shared timestamp so a limiter may also back several sequential sessions.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	logger   zerolog.Logger
}

// NewLimiter creates a limiter with the given interval. A non-positive
// interval selects DefaultInterval.
func NewLimiter(interval time.Duration, logger zerolog.Logger) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Limiter{
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the configured inter-request spacing.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until one interval has elapsed since the previously admitted
// request, then records the admission. It returns early with ctx.Err() if
// the context is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()
	wait := l.interval - now.Sub(l.last)
	if l.last.IsZero() || wait <= 0 {
		l.last = now
		l.mu.Unlock()
		return nil
	}
	l.mu.Unlock()

	candidThrottleWaitsTotal.Inc()
	candidThrottleWaitSeconds.Observe(wait.Seconds())

	l.logger.Debug().
		Dur("wait", wait).
		Msg("Throttling request to respect API quota")

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
	}

	l.mu.Lock()
	l.last = time.Now()
	l.mu.Unlock()
	return nil
}

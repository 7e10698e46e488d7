// Package metrics provides the Prometheus registry reference for the
// grants fetcher. Metrics are defined in the packages that emit them
// (client, pagination, ratelimit, cache) to keep them next to the code
// they measure; this package documents the full inventory.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registerer used by all packages.
// Metrics register themselves via promauto.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - candid_requests_total{status} (Counter): requests by HTTP status,
//     plus the synthetic statuses "network_error" and "cache_hit"
//   - candid_request_duration_seconds (Histogram): request duration
//   - candid_errors_total{class} (Counter): errors by class (client, server, network)
//
// Pagination Metrics (pkg/pagination):
//   - candid_pages_fetched_total (Counter): successfully fetched pages
//   - candid_grants_fetched_total (Counter): grant rows accumulated
//   - candid_pages_failed_total (Counter): page failures that ended a run
//
// Throttle Metrics (pkg/ratelimit):
//   - candid_throttle_waits_total (Counter): requests delayed by the throttle
//   - candid_throttle_wait_seconds (Histogram): throttle wait durations
//
// Cache Metrics (pkg/cache):
//   - candid_cache_hits_total (Counter): response cache hits
//   - candid_cache_misses_total (Counter): response cache misses
//   - candid_cache_errors_total{operation} (Counter): cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   rate(candid_cache_hits_total[5m]) /
//   (rate(candid_cache_hits_total[5m]) + rate(candid_cache_misses_total[5m]))
//
//   # Request Error Rate
//   rate(candid_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(candid_request_duration_seconds_bucket[5m]))

// Package client provides the Candid transactions HTTP client with error
// classification, optional response caching, and metrics.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/candid-tools/grants-fetcher/pkg/cache"
	"github.com/candid-tools/grants-fetcher/pkg/logging"
	"github.com/candid-tools/grants-fetcher/pkg/search"
)

// DefaultBaseURL is the production transactions endpoint.
const DefaultBaseURL = "https://api.candid.org/grants/v1/transactions"

// Prometheus metrics for Candid client operations.
var (
	candidRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "candid_requests_total",
		Help: "Total Candid API requests by status",
	}, []string{"status"})

	candidRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "candid_request_duration_seconds",
		Help:    "Candid API request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	candidErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "candid_errors_total",
		Help: "Total Candid API errors by class",
	}, []string{"class"})
)

// PageResult is one decoded response page. Rows are opaque grant records
// owned by the API and passed through unmodified.
type PageResult struct {
	Rows       []json.RawMessage
	TotalHits  int
	TotalPages int
}

// envelope mirrors the top-level response shape of the transactions endpoint.
type envelope struct {
	Data struct {
		Rows      []json.RawMessage `json:"rows"`
		TotalHits int               `json:"total_hits"`
		NumPages  int               `json:"num_pages"`
	} `json:"data"`
}

// Config holds the client configuration.
type Config struct {
	// APIKey is the Candid subscription key, sent in the Subscription-Key
	// header on every request (REQUIRED).
	APIKey string

	// BaseURL is the transactions endpoint (default: DefaultBaseURL).
	BaseURL string

	// Timeout for a single page request.
	Timeout time.Duration

	// Redis enables response caching when set. Optional.
	Redis *redis.Client

	// CacheTTL is how long cached pages stay fresh.
	CacheTTL time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:   apiKey,
		BaseURL:  DefaultBaseURL,
		Timeout:  30 * time.Second,
		CacheTTL: 15 * time.Minute,
	}
}

// Client fetches single pages of grants transactions.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// New creates a new Candid client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		cacheManager = cache.NewManager(cfg.Redis, cfg.CacheTTL)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cacheManager,
		config: cfg,
		logger: logging.NewLogger("candid-client"),
	}, nil
}

// FetchPage requests a single result page for the given filter. Any
// transport failure or non-2xx status is returned as an *APIError; there is
// no retry. An envelope without rows decodes to an empty page, not an error.
func (c *Client) FetchPage(ctx context.Context, page int, filter search.Filter) (*PageResult, error) {
	params := filter.Params(page)

	startTime := time.Now()
	defer func() {
		candidRequestDuration.Observe(time.Since(startTime).Seconds())
	}()

	cacheKey := cache.Key{QueryParams: params}

	if c.cache != nil {
		body, err := c.cache.Get(ctx, cacheKey)
		if err != nil && err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Int("page", page).Msg("Cache get error")
		}
		if err == nil {
			c.logger.Debug().Int("page", page).Msg("Serving page from cache")
			candidRequestsTotal.WithLabelValues("cache_hit").Inc()
			return decodeEnvelope(body)
		}
	}

	body, err := c.get(ctx, page, params)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body); err != nil {
			c.logger.Warn().Err(err).Int("page", page).Msg("Failed to cache page")
		}
	}

	return decodeEnvelope(body)
}

// get performs the HTTP request and returns the raw response body.
func (c *Client) get(ctx context.Context, page int, params url.Values) ([]byte, error) {
	requestURL := c.config.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Subscription-Key", c.config.APIKey)

	c.logger.Debug().Int("page", page).Msg("Executing Candid request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		candidErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		candidRequestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Error().Err(err).Int("page", page).Msg("HTTP request failed")
		return nil, &APIError{
			Class:   ErrorClassNetwork,
			Message: fmt.Sprintf("fetch page %d", page),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	candidRequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errClass := classifyStatus(resp.StatusCode)
		candidErrorsTotal.WithLabelValues(string(errClass)).Inc()

		c.logger.Warn().
			Int("page", page).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Candid request error")

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Class:      errClass,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		candidErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &APIError{
			Class:   ErrorClassNetwork,
			Message: fmt.Sprintf("read page %d body", page),
			Err:     err,
		}
	}

	return body, nil
}

// decodeEnvelope parses the response body into a PageResult.
func decodeEnvelope(body []byte) (*PageResult, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}

	return &PageResult{
		Rows:       env.Data.Rows,
		TotalHits:  env.Data.TotalHits,
		TotalPages: env.Data.NumPages,
	}, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

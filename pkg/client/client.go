// Package client provides the collection API HTTP client with rate limiting,
// caching, and error handling.
package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/arcivia/arcivia-explore/pkg/cache"
	"github.com/arcivia/arcivia-explore/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public Metropolitan Museum of Art collection API.
const DefaultBaseURL = "https://collectionapi.metmuseum.org/public/collection/v1"

// Prometheus metrics for client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcivia_requests_total",
		Help: "Total collection API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "arcivia_request_duration_seconds",
		Help:    "Collection API request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcivia_errors_total",
		Help: "Total collection API errors by class",
	}, []string{"class"})
)

// Client is the collection API client.
type Client struct {
	httpClient  *http.Client
	rateLimiter *ratelimit.Tracker
	cache       *cache.Manager
	retryPolicy RetryPolicy
	baseURL     string
	basePath    string
	config      Config
	logger      zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Redis client for caching and shared rate limit state
	Redis *redis.Client

	// BaseURL of the collection API, without trailing slash
	BaseURL string

	// UserAgent identifies this application to the upstream
	UserAgent string

	// Timeout bounds a single HTTP exchange
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(redis *redis.Client, userAgent string) Config {
	return Config{
		Redis:     redis,
		BaseURL:   DefaultBaseURL,
		UserAgent: userAgent,
		Timeout:   30 * time.Second,
	}
}

// New creates a new collection API client.
func New(cfg Config) (*Client, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis client is required")
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "met-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: ratelimit.NewTracker(cfg.Redis, logger),
		cache:       cache.NewManager(cfg.Redis),
		retryPolicy: RetryConfigForErrorClass,
		baseURL:     base.String(),
		basePath:    base.Path,
		config:      cfg,
		logger:      logger,
	}, nil
}

// Do performs an HTTP request with caching, rate limiting, and retries.
//
// Fresh cache hits are answered without touching the network. Stale
// entries with a validator are revalidated with a conditional request.
// Retryable failures (5xx, 429, network) are retried with backoff; other
// 4xx responses are returned to the caller unchanged.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	path := c.relativePath(req.URL.Path)
	endpoint := endpointLabel(path)

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Check Cache
	cacheKey := cache.Key{Path: path, Query: req.URL.Query()}

	cached, err := c.cache.Get(ctx, cacheKey)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
	}
	if cached != nil && !cached.IsExpired() {
		c.logger.Debug().Str("path", path).Dur("ttl", cached.TTL()).Msg("Serving fresh cache entry")
		requestsTotal.WithLabelValues(endpoint, "cache").Inc()
		return cache.EntryToResponse(cached, req), nil
	}

	// Step 2: Check Rate Limit
	allowed, err := c.rateLimiter.ShouldAllowRequest(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error().Err(err).Msg("Rate limit check failed")
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if !allowed {
		requestsTotal.WithLabelValues(endpoint, "rate_limited").Inc()
		if cached != nil {
			c.logger.Debug().Str("path", path).Msg("Cool-down active - serving stale cache entry")
			return cache.EntryToResponse(cached, req), nil
		}
		return nil, ErrRateLimited
	}

	// Step 3: Revalidate stale entry
	if cached != nil && cached.CanRevalidate() {
		cache.AddConditionalHeaders(req, cached)
		cache.ConditionalRequestsSent.Inc()
		c.logger.Debug().
			Str("path", path).
			Str("etag", cached.ETag).
			Msg("Making conditional request")
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	// Step 4: Execute with retry
	var resp *http.Response

	retryErr := retryWithBackoff(ctx, c.logger, c.retryPolicy, func() (ErrorClass, error) {
		var reqErr error
		resp, reqErr = c.httpClient.Do(req)
		if reqErr != nil {
			if ctx.Err() != nil {
				// superseded or shut down; not worth retrying
				return "", reqErr
			}
			c.logger.Warn().Err(reqErr).Str("endpoint", endpoint).Msg("HTTP request failed")
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			return ErrorClassNetwork, reqErr
		}

		if err := c.rateLimiter.RecordResponse(ctx, resp.StatusCode, resp.Header); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to record rate limit state")
		}

		requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

		errClass := classifyStatus(resp.StatusCode)
		if errClass == "" {
			return "", nil
		}
		errorsTotal.WithLabelValues(string(errClass)).Inc()

		event := c.logger.Warn()
		if errClass == ErrorClassNotFound {
			event = c.logger.Debug()
		}
		event.
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Collection API request error")

		if shouldRetry(errClass) {
			resp.Body.Close()
			return errClass, &APIError{
				StatusCode: resp.StatusCode,
				ErrorClass: errClass,
				Message:    resp.Status,
			}
		}

		// client errors are final; the caller inspects the status
		return "", nil
	})

	if retryErr != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, retryErr
	}

	// Step 5: 304 Not Modified - serve the revalidated entry
	if resp.StatusCode == http.StatusNotModified && cached != nil {
		cache.NotModifiedResponses.Inc()
		resp.Body.Close()

		if err := c.cache.Refresh(ctx, cacheKey, cached, cache.ExpiresFrom(resp.Header)); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to refresh cache entry")
		}
		c.logger.Debug().Str("path", path).Msg("304 Not Modified - using cache")
		return cache.EntryToResponse(cached, req), nil
	}

	// Step 6: Update cache on success
	if resp.StatusCode == http.StatusOK {
		entry, err := cache.ResponseToEntry(resp)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to create cache entry")
		} else if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to cache response")
		}
	}

	return resp, nil
}

// relativePath strips the base URL path so cache keys and metric labels
// do not depend on where the API is mounted.
func (c *Client) relativePath(p string) string {
	rel := strings.TrimPrefix(p, c.basePath)
	if !strings.HasPrefix(rel, "/") {
		rel = "/" + rel
	}
	return rel
}

// endpointLabel collapses numeric path segments to keep metric cardinality bounded.
func endpointLabel(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == "" {
			continue
		}
		if _, err := strconv.Atoi(s); err == nil {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// SetRetryPolicy overrides the per-class retry configuration (for testing).
func (c *Client) SetRetryPolicy(policy RetryPolicy) {
	c.retryPolicy = policy
}

// GetCache returns the cache manager (for testing).
func (c *Client) GetCache() *cache.Manager {
	return c.cache
}

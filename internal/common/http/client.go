// internal/common/http/client.go
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"booking-workers/internal/common/errors"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/common/metrics"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const maxErrorBody = 512

// ResponseCache stores successful GET response bodies.
type ResponseCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Options struct {
	BaseURL  string
	Username string
	Password string

	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration

	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64
	RateBurst int

	Cache    ResponseCache
	CacheTTL time.Duration

	Logger     logger.Logger
	HTTPClient *http.Client
}

// Client is a JSON client for the booking API with basic auth, client-side
// rate limiting, retries with jittered exponential backoff and an optional
// response cache.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	limiter    *rate.Limiter

	maxRetries   int
	retryBackoff time.Duration

	cache    ResponseCache
	cacheTTL time.Duration

	logger logger.Logger
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	backoff := opts.RetryBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		username:     opts.Username,
		password:     opts.Password,
		httpClient:   httpClient,
		limiter:      limiter,
		maxRetries:   opts.MaxRetries,
		retryBackoff: backoff,
		cache:        opts.Cache,
		cacheTTL:     opts.CacheTTL,
		logger:       log.WithFields(map[string]interface{}{"component": "booking-api"}),
	}
}

// StatusError is a non-2xx booking API response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("booking api returned %d: %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err wraps a StatusError with the given code.
func IsStatus(err error, code int) bool {
	stdErr, ok := errors.AsStandardError(err)
	if !ok {
		return false
	}
	se, ok := stdErr.Unwrap().(*StatusError)
	return ok && se.StatusCode == code
}

// GetJSON issues GET path?query and decodes the body into out. operation
// names the call in logs, metrics and errors. Responses are served from and
// written to the cache when one is configured.
func (c *Client) GetJSON(ctx context.Context, operation, path string, query url.Values, out interface{}) error {
	return c.getJSON(ctx, operation, path, query, out, true)
}

// GetJSONNoCache is GetJSON bypassing the response cache, for data that
// must be fresh such as availability.
func (c *Client) GetJSONNoCache(ctx context.Context, operation, path string, query url.Values, out interface{}) error {
	return c.getJSON(ctx, operation, path, query, out, false)
}

func (c *Client) getJSON(ctx context.Context, operation, path string, query url.Values, out interface{}, useCache bool) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	if useCache {
		if body, ok := c.cached(ctx, target); ok {
			if err := json.Unmarshal(body, out); err == nil {
				return nil
			}
		}
	}

	body, err := c.do(ctx, operation, target)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewUpstreamRequestFailedError(operation, fmt.Errorf("decode response: %w", err))
	}

	if useCache {
		c.store(ctx, target, body)
	}
	return nil
}

func (c *Client) do(ctx context.Context, operation, target string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, attempt); err != nil {
				return nil, errors.NewUpstreamTimeoutError(operation, err)
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, errors.NewUpstreamTimeoutError(operation, err)
			}
		}

		body, retry, err := c.attempt(ctx, operation, target)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry {
			return nil, err
		}

		c.logger.Warn("Booking API request failed, retrying", map[string]interface{}{
			"operation": operation,
			"attempt":   attempt + 1,
			"error":     err.Error(),
		})
	}

	return nil, lastErr
}

// attempt performs one request. The bool result reports whether the
// failure is worth retrying.
func (c *Client) attempt(ctx context.Context, operation, target string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, errors.NewUpstreamRequestFailedError(operation, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(operation, "error").Inc()
		if ctx.Err() != nil {
			return nil, false, errors.NewUpstreamTimeoutError(operation, ctx.Err())
		}
		return nil, true, errors.NewUpstreamRequestFailedError(operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.UpstreamRequests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()
	if err != nil {
		return nil, true, errors.NewUpstreamRequestFailedError(operation, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, false, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, false, errors.NewUpstreamUnauthorizedError(operation)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, errors.NewUpstreamRateLimitedError(operation)
	case resp.StatusCode >= 500:
		return nil, true, errors.NewUpstreamRequestFailedError(operation, statusError(resp.StatusCode, body))
	default:
		return nil, false, errors.NewUpstreamRequestFailedError(operation, statusError(resp.StatusCode, body)).
			WithMetadata("statusCode", resp.StatusCode)
	}
}

func statusError(code int, body []byte) *StatusError {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return &StatusError{StatusCode: code, Body: text}
}

func (c *Client) sleep(ctx context.Context, attempt int) error {
	backoff := c.retryBackoff << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(c.retryBackoff)/2 + 1))

	timer := time.NewTimer(backoff + jitter)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return nil, false
	}
	body, hit, err := c.cache.GetBytes(ctx, key)
	if err != nil {
		c.logger.Warn("Response cache read failed", map[string]interface{}{"error": err.Error()})
		metrics.UpstreamCacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	if !hit {
		metrics.UpstreamCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.UpstreamCacheLookups.WithLabelValues("hit").Inc()
	return body, true
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.SetBytes(ctx, key, body, c.cacheTTL); err != nil {
		c.logger.Warn("Response cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

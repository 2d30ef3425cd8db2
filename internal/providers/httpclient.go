// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/vibecompass/internal/cache"
	"github.com/tomtom215/vibecompass/internal/config"
	"github.com/tomtom215/vibecompass/internal/logging"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

const (
	userAgent = "vibecompass/1.0"

	// maxResponseBytes caps how much of an upstream body is read.
	maxResponseBytes = 4 << 20
)

// StatusError is returned when an upstream answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Retryable reports whether the status indicates a transient upstream fault.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client is the shared HTTP plumbing for provider adapters: retries with
// backoff, a token-bucket rate limit, a circuit breaker and a response cache.
type Client struct {
	name     string
	baseURL  *url.URL
	apiKey   string
	http     *retryablehttp.Client
	limiter  *rate.Limiter
	breaker  *Breaker
	store    cache.Store
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewClient builds a client for the provider called name. A nil store
// disables caching; a zero RateLimit disables rate limiting.
func NewClient(name string, cfg config.HTTPProviderConfig, store cache.Store) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s base url: %w", name, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%s base url %q must be absolute", name, cfg.BaseURL)
	}
	if store == nil {
		store = cache.Nop{}
	}

	logger := logging.WithComponent("provider-" + name)

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = leveledLogger{logger: logger}
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = time.Second
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		name:     name,
		baseURL:  base,
		apiKey:   cfg.APIKey,
		http:     retryClient,
		breaker:  NewBreaker("provider-"+name, cfg.Breaker),
		store:    store,
		cacheTTL: cfg.CacheTTL,
		logger:   logger,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return c.name
}

// BreakerState returns the circuit breaker state.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// Get issues a GET to path with query and returns the response body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.call(ctx, http.MethodGet, path, query, nil)
}

// PostJSON encodes payload as JSON, POSTs it to path and returns the
// response body.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", c.name, err)
	}
	return c.call(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%s: rate limit wait: %w", c.name, err)
			}
			// The limiter refuses waits that cannot finish before the deadline.
			return nil, fmt.Errorf("%s: %w: %w", c.name, recommend.ErrProviderUnavailable, err)
		}
	}

	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, method, path, query, body)
	})
	if err != nil && IsRejected(err) {
		return nil, fmt.Errorf("%s: %w: %w", c.name, recommend.ErrProviderUnavailable, err)
	}
	return data, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	endpoint := c.baseURL.JoinPath(path)
	endpoint.RawQuery = query.Encode()

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint.String(), rawBody)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("%s: %s %s: %w", c.name, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", c.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(data)
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return nil, &StatusError{Provider: c.name, StatusCode: resp.StatusCode, Body: snippet}
	}
	return data, nil
}

// cacheGet loads key into dst. Store errors are logged and reported as a
// miss so that a broken cache never fails a request.
func (c *Client) cacheGet(ctx context.Context, key string, dst any) bool {
	found, err := c.store.Get(ctx, key, dst)
	if err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	return found
}

func (c *Client) cachePut(ctx context.Context, key string, value any) {
	if err := c.store.Set(ctx, key, value, c.cacheTTL); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// leveledLogger routes retryablehttp's logging through zerolog.
type leveledLogger struct {
	logger zerolog.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

var _ retryablehttp.LeveledLogger = leveledLogger{}

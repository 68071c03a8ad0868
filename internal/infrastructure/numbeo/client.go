package numbeo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/costlens/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	defaultTimeout      = 10 * time.Second
	defaultMaxAttempts  = 3
	defaultMaxBodyBytes = 5 << 20
)

// FetchObserver is notified of every completed page fetch attempt
type FetchObserver interface {
	ObserveFetch(outcome string, duration time.Duration)
}

// ClientConfig holds settings for the page client
type ClientConfig struct {
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxAttempts       int
	MaxBodyBytes      int64
}

// Client fetches cost of living pages
type Client struct {
	httpClient   *http.Client
	userAgent    string
	rateLimiter  *rate.Limiter
	maxAttempts  int
	maxBodyBytes int64
	backoff      func(attempt int) time.Duration
	observer     FetchObserver
	debug        bool
}

// NewClient creates a new page client. Zero values in config fall back to defaults.
func NewClient(config ClientConfig) *Client {
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxAttempts := config.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	maxBody := config.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	// Be polite to the source: one request per second with a small burst by default
	limit := rate.Limit(config.RequestsPerSecond)
	if config.RequestsPerSecond <= 0 {
		limit = rate.Limit(1)
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent:    userAgent,
		rateLimiter:  rate.NewLimiter(limit, burst),
		maxAttempts:  maxAttempts,
		maxBodyBytes: maxBody,
		backoff:      exponentialBackoff,
	}
}

// SetDebug enables or disables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SetObserver registers an observer for fetch outcomes
func (c *Client) SetObserver(observer FetchObserver) {
	c.observer = observer
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[FETCH] "+format, args...)
	}
}

// exponentialBackoff returns the wait before retrying after the given attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// readLimitedBody reads r in full, failing with domain.ErrSourceUnavailable
// when it holds more than limit bytes
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: page larger than %d bytes", domain.ErrSourceUnavailable, limit)
	}
	return body, nil
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, pageURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	return resp, nil
}

// FetchPage downloads the markup of a page. Transport failures, 429 and 5xx
// responses are retried with exponential backoff; 404 maps to
// domain.ErrCityNotFound. Other statuses and pages over the body limit fail
// immediately.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, c.backoff(attempt-1)); err != nil {
				return "", err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		started := time.Now()
		body, retry, err := c.fetchOnce(ctx, pageURL, attempt)
		c.observe(err, time.Since(started))
		if err == nil {
			return body, nil
		}
		if !retry {
			return "", err
		}
		lastErr = err
	}

	log.Printf("[FETCH] All %d attempts failed for %s: %v", c.maxAttempts, pageURL, lastErr)
	return "", lastErr
}

// fetchOnce performs one attempt and reports whether a failure is retryable
func (c *Client) fetchOnce(ctx context.Context, pageURL string, attempt int) (string, bool, error) {
	resp, err := c.doRequest(ctx, pageURL)
	if err != nil {
		c.debugLog("Request error (attempt %d): %v", attempt, err)
		return "", ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	c.debugLog("GET %s (attempt %d) - Status: %d", pageURL, attempt, resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return "", false, fmt.Errorf("%w: %s", domain.ErrCityNotFound, pageURL)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", true, fmt.Errorf("%w: %s (status %d)", domain.ErrSourceUnavailable, pageURL, resp.StatusCode)
	default:
		return "", false, fmt.Errorf("%w: %s (status %d)", domain.ErrSourceUnavailable, pageURL, resp.StatusCode)
	}

	body, err := readLimitedBody(resp.Body, c.maxBodyBytes)
	if errors.Is(err, domain.ErrSourceUnavailable) {
		return "", false, fmt.Errorf("%w (%s)", err, pageURL)
	}
	if err != nil {
		return "", true, fmt.Errorf("%w: reading body: %v", domain.ErrSourceUnavailable, err)
	}

	return string(body), false, nil
}

func (c *Client) observe(err error, duration time.Duration) {
	if c.observer == nil {
		return
	}

	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrCityNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	c.observer.ObserveFetch(outcome, duration)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

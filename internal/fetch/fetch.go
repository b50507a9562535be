// Package fetch performs outbound GET requests with bounded retry on
// transient failures.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Defaults for the retry loop. A request makes at most DefaultMaxRetries+1
// attempts, sleeping min(backoff, DefaultMaxBackoff) between them with the
// backoff doubling from DefaultInitialBackoff.
const (
	DefaultMaxRetries     = 2
	DefaultInitialBackoff = 300 * time.Millisecond
	DefaultMaxBackoff     = 2 * time.Second

	defaultTimeout = 10 * time.Second
)

// ErrRetryExhausted is returned when all retry attempts failed. The last
// underlying transport error is wrapped alongside it.
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// StatusError reports a non-success HTTP status from an upstream service.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d for %s", e.Code, e.URL)
}

// IsTransientStatus reports whether an HTTP status should be retried.
func IsTransientStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Client is a retrying HTTP GET client. The zero value is not usable;
// construct it with New.
type Client struct {
	http           *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
	logger         zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMaxRetries sets the number of retries after the initial attempt.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoff sets the initial backoff and its ceiling.
func WithBackoff(initial, max time.Duration) Option {
	return func(c *Client) {
		c.initialBackoff = initial
		c.maxBackoff = max
	}
}

// withSleeper replaces the backoff sleep, for tests.
func withSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// New creates a Client with the default retry policy.
func New(opts ...Option) *Client {
	c := &Client{
		http:           &http.Client{Timeout: defaultTimeout},
		maxRetries:     DefaultMaxRetries,
		initialBackoff: DefaultInitialBackoff,
		maxBackoff:     DefaultMaxBackoff,
		sleep:          sleepContext,
		logger:         log.With().Str("component", "fetch").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET against rawURL with params merged into the query string.
// Transient failures (transport errors and statuses 429/502/503/504) are
// retried with exponential backoff. Non-transient statuses such as 404 are
// returned as-is on the first attempt; the caller decides how to interpret
// them. After exhaustion the last response (or transport error) is surfaced
// with its original cause intact. The caller owns the response body.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (*http.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if len(params) > 0 {
		q := u.Query()
		for key, vals := range params {
			for _, v := range vals {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	attempts := c.maxRetries + 1
	backoff := c.initialBackoff

	var resp *http.Response
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}

		attemptsTotal.Inc()
		resp, lastErr = c.http.Do(req)
		if lastErr == nil && !IsTransientStatus(resp.StatusCode) {
			if attempt > 1 {
				c.logger.Debug().
					Str("url", u.Redacted()).
					Int("attempt", attempt).
					Msg("request succeeded after retry")
			}
			return resp, nil
		}

		if attempt == attempts {
			break
		}

		// Transient failure with attempts remaining. A response body left
		// open would leak the connection across the retry.
		if lastErr == nil {
			drainAndClose(resp)
		}
		retriesTotal.Inc()

		delay := backoff
		if delay > c.maxBackoff {
			delay = c.maxBackoff
		}
		c.logger.Debug().
			Str("url", u.Redacted()).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("transient failure, retrying")
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
		backoff *= 2
	}

	if lastErr != nil {
		exhaustedTotal.Inc()
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, attempts, lastErr)
	}

	// Still a transient status after the final attempt. The response is
	// handed back untouched so the caller sees the real upstream status.
	c.logger.Warn().
		Str("url", u.Redacted()).
		Int("status", resp.StatusCode).
		Int("attempts", attempts).
		Msg("retries exhausted")
	exhaustedTotal.Inc()
	return resp, nil
}

// GetJSON performs a retrying Get and decodes a 200 response into v.
// Any other status is reported as a *StatusError.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, v any) error {
	resp, err := c.Get(ctx, rawURL, params)
	if err != nil {
		return err
	}
	defer drainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, URL: rawURL}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetText performs a retrying Get and returns a 200 response body as text.
func (c *Client) GetText(ctx context.Context, rawURL string) (string, error) {
	resp, err := c.Get(ctx, rawURL, nil)
	if err != nil {
		return "", err
	}
	defer drainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, URL: rawURL}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

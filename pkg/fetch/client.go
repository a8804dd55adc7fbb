// Package fetch provides the retrying HTTP client used for registry metadata
// and source archive downloads. Every call is independent; the client keeps no
// state across invocations.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/srcstash/srcstash/pkg/auth"
)

const (
	defaultAttempts  = 3
	defaultBaseDelay = 150 * time.Millisecond
)

// ErrNotFound marks a 404/410 response so callers can take a fallback path
// without inspecting status codes. It is never retried.
var ErrNotFound = fmt.Errorf("resource not found")

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Client performs HTTP GETs with bounded exponential-backoff retries on
// transient failures.
type Client struct {
	client    *http.Client
	userAgent string
	attempts  int
	baseDelay time.Duration
}

// New creates a fetch client with the default retry policy: up to 3 attempts,
// 150ms base delay doubling per attempt.
func New(timeout time.Duration) *Client {
	return NewWithPolicy(timeout, defaultAttempts, defaultBaseDelay)
}

// NewWithPolicy creates a fetch client with an explicit retry policy. Tests
// use this to shrink the backoff delay.
func NewWithPolicy(timeout time.Duration, attempts int, baseDelay time.Duration) *Client {
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: "srcstash/1.0",
		attempts:  attempts,
		baseDelay: baseDelay,
	}
}

// RequestOption mutates the outgoing request before it is sent.
type RequestOption func(*http.Request)

// WithHeader sets one header on the outgoing request.
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// WithAuth applies authentication credentials to the outgoing request.
func WithAuth(authenticator auth.Authenticator) RequestOption {
	return func(req *http.Request) {
		_ = authenticator.Apply(req)
	}
}

// Get fetches the URL, retrying transient transport errors and retryable
// status codes with delay base*2^(attempt-1). The response body is open on
// success and must be closed by the caller. Non-retryable failures and
// exhausted attempts surface the last error unchanged.
func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) (*http.Response, error) {
	var lastErr error
	for attempt := 1; ; attempt++ {
		resp, err := c.do(ctx, url, opts...)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt >= c.attempts || !isRetryable(err) {
			return nil, unwrapRetryable(lastErr)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.baseDelay << (attempt - 1)):
		}
	}
}

// do performs a single request attempt. Failures worth another attempt come
// back wrapped in retryableError.
func (c *Client) do(ctx context.Context, url string, opts ...RequestOption) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTransientTransportError(err) {
			return nil, &retryableError{err: err}
		}
		return nil, err
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return resp, nil
	}
	resp.Body.Close()

	statusErr := &StatusError{URL: url, StatusCode: resp.StatusCode}
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, statusErr)
	case retryableStatuses[resp.StatusCode]:
		return nil, &retryableError{err: statusErr}
	default:
		return nil, statusErr
	}
}

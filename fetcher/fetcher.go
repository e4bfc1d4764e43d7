// Package fetcher is the outbound HTTP boundary. Every request carries
// the configured client identification, shares one rate limiter, and is
// capped by a fixed deadline. Redirects are followed by the underlying
// client up to its default depth.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const requestTimeout = 20 * time.Second

// NetworkError reports a non-2xx response after redirects.
type NetworkError struct {
	URL    string
	Status int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Status, e.URL)
}

// TimeoutError reports a request that outlived the fixed deadline.
type TimeoutError struct {
	URL string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.URL, requestTimeout)
}

// ConnectionError reports a transport-level failure below HTTP.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed with %s", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Client fetches raw bytes over HTTPS with a fixed identity.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	fromURL   string
}

// New creates a Client identifying itself with userAgent and the
// source-attribution fromURL on every request.
func New(userAgent, fromURL string) *Client {
	return &Client{
		http:      &http.Client{Timeout: requestTimeout},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 2),
		userAgent: userAgent,
		fromURL:   fromURL,
	}
}

// Get returns the response body for url, or a NetworkError, TimeoutError
// or ConnectionError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed with %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s with %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("From", c.fromURL)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{URL: url}
		}
		return nil, &ConnectionError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{URL: url}
		}
		return nil, &ConnectionError{URL: url, Err: err}
	}
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

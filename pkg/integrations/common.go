package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a resource doesn't exist upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrQueued is returned for a 202 reply: the server accepted the request
	// and is still preparing the response. Retrying later succeeds.
	ErrQueued = errors.New("request queued")

	// ErrRateLimited is returned for a 429 reply.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnauthorized is returned for 401 and 403 replies, usually a missing
	// or revoked API token.
	ErrUnauthorized = errors.New("unauthorized")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// BearerHeaders returns the Authorization header for token, or nil when
// token is empty.
func BearerHeaders(token string) map[string]string {
	if token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }

// parseRetryAfter reads a Retry-After header given in seconds. HTTP dates
// and garbage yield 0.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

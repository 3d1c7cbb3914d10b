// Package httputil provides retry helpers for the BGG API client.
//
// # Retry
//
// [Retry] re-runs an operation while it fails with a [RetryableError]:
//
//   - Network errors and 5xx responses
//   - 429 rate limit responses, honouring Retry-After
//   - 202 responses, which BGG sends while it builds a collection export
//
// Any other error stops the loop at once. The delay doubles after each
// attempt unless the error carries its own wait:
//
//	err := httputil.Retry(ctx, 5, 2*time.Second, func() error {
//	    return fetch()
//	})
//
// [RetryWithBackoff] uses 3 attempts and a 1 second base delay.
//
// Response caching lives in package cache; see [cache.Cache].
//
// [cache.Cache]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/cache#Cache
package httputil

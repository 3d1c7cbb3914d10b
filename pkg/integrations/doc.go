// Package integrations provides the HTTP plumbing for upstream APIs.
//
// # Overview
//
// The only upstream today is BoardGameGeek, whose client lives in the [bgg]
// subpackage:
//
//	client := bgg.NewClient(backend, cache.TTLHTTP, token)
//	items, err := client.FetchItems(ctx, "matze", false) // false = use cache
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by API clients:
//
//   - Default headers (e.g. a bearer token from [BearerHeaders])
//   - Retry with exponential backoff via [httputil.Retry]
//   - Decoded-response caching via [cache.Cache]
//
// Status codes map onto sentinel errors: 404 is [ErrNotFound], 401/403 is
// [ErrUnauthorized], and 202, 429 and 5xx are retried before surfacing as
// [ErrQueued], [ErrRateLimited] or [ErrNetwork].
//
// [bgg]: https://pkg.go.dev/github.com/matzehuels/kallax/pkg/integrations/bgg
package integrations

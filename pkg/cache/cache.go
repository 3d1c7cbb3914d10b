// Package cache provides the key-value cache shared by the CLI, the HTTP
// server and the BGG client.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// the server, and [NullCache] when caching is off. Keys are built by a
// [Keyer] so every caller agrees on key layout:
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewDefaultKeyer()
//	key := k.CollectionKey("matze", cache.CollectionKeyOpts{Statuses: []string{"own"}})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and
	// unexpired. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default lifetimes per cached kind.
const (
	// TTLHTTP covers raw BGG API responses.
	TTLHTTP = 24 * time.Hour

	// TTLCollection covers normalized collections. Users edit their
	// collections, so this is shorter than the raw thing data.
	TTLCollection = 6 * time.Hour

	// TTLPack covers packing results. They are a pure function of their
	// key, so they can live long.
	TTLPack = 7 * 24 * time.Hour

	// TTLArtifact covers rendered outputs.
	TTLArtifact = 7 * 24 * time.Hour
)

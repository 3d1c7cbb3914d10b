package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments (or a
// CLI and a server) can share one backend without colliding.
//
// Example usage:
//
//	// Server keys, versioned so a format change invalidates old entries
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "kallax:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// CollectionKey generates a prefixed key for collection caching.
func (k *ScopedKeyer) CollectionKey(username string, opts CollectionKeyOpts) string {
	return k.prefix + k.inner.CollectionKey(username, opts)
}

// PackKey generates a prefixed key for packing result caching.
func (k *ScopedKeyer) PackKey(itemsHash, configHash string) string {
	return k.prefix + k.inner.PackKey(itemsHash, configHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(resultHash, opts)
}

package cache

import (
	"slices"
	"strings"
)

// Keyer builds cache keys. Swap it (see [ScopedKeyer]) to namespace a
// shared backend.
type Keyer interface {
	// HTTPKey keys a raw HTTP response within an integration namespace.
	HTTPKey(namespace, key string) string

	// CollectionKey keys a normalized BGG collection.
	CollectionKey(username string, opts CollectionKeyOpts) string

	// PackKey keys a packing result by the hashes of its inputs.
	PackKey(itemsHash, configHash string) string

	// ArtifactKey keys a rendered output of a packing result.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// CollectionKeyOpts are the fetch options that change a collection.
type CollectionKeyOpts struct {
	Statuses          []string `json:"statuses,omitempty"`
	IncludeExpansions bool     `json:"include_expansions"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Columns int    `json:"columns,omitempty"`
	Title   string `json:"title,omitempty"`
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// CollectionKey hashes the lower-cased username with the options. Status
// order does not matter.
func (DefaultKeyer) CollectionKey(username string, opts CollectionKeyOpts) string {
	opts.Statuses = slices.Sorted(slices.Values(opts.Statuses))
	return hashKey("collection", strings.ToLower(username), opts)
}

// PackKey returns "pack:<hash>".
func (DefaultKeyer) PackKey(itemsHash, configHash string) string {
	return hashKey("pack", itemsHash, configHash)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}

var _ Keyer = DefaultKeyer{}

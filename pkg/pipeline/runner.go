package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/kallax/pkg/cache"
	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/pack"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
	kio "github.com/matzehuels/kallax/pkg/io"
	"github.com/matzehuels/kallax/pkg/observability"
	"github.com/matzehuels/kallax/pkg/render"
)

// CollectionFetcher loads a user's normalized collection. The BGG client
// implements it.
type CollectionFetcher interface {
	FetchItems(ctx context.Context, username string, refresh bool) ([]game.Item, error)
}

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Fetcher CollectionFetcher
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default layout and a nil logger uses log.Default. Fetcher may be
// nil if runs never name a username.
func NewRunner(c cache.Cache, keyer cache.Keyer, fetcher CollectionFetcher, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Fetcher: fetcher,
		Logger:  logger,
	}
}

// Execute runs the complete fetch → pack → render pipeline with caching.
// A halted packing result is returned with a nil error and no artifacts.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID[:8])
	hooks := observability.Pipeline()

	// Stage 1: Fetch
	hooks.OnFetchStart(ctx, opts.Source())
	fetchStart := time.Now()
	items, fetchHit, err := r.FetchWithCacheInfo(ctx, opts)
	result.Stats.FetchTime = time.Since(fetchStart)
	hooks.OnFetchComplete(ctx, opts.Source(), len(items), result.Stats.FetchTime, err)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Items = items
	result.Stats.ItemCount = len(items)
	result.CacheInfo.FetchHit = fetchHit

	logger.Info("loaded items",
		"source", opts.Source(),
		"items", len(items),
		"cached", fetchHit,
		"duration", result.Stats.FetchTime)

	// Stage 2: Pack
	hooks.OnPackStart(ctx, len(items))
	packStart := time.Now()
	packing, packHit, err := r.PackWithCacheInfo(ctx, items, opts)
	result.Stats.PackTime = time.Since(packStart)
	if err != nil {
		hooks.OnPackComplete(ctx, 0, false, result.Stats.PackTime, err)
		return nil, fmt.Errorf("pack: %w", err)
	}
	hooks.OnPackComplete(ctx, len(packing.Cubes), packing.Halted(), result.Stats.PackTime, nil)
	result.Packing = packing
	result.Stats.CubeCount = len(packing.Cubes)
	result.CacheInfo.PackHit = packHit

	if packing.Halted() {
		logger.Warn("missing versions, packing halted",
			"games", len(packing.Games),
			"duration", result.Stats.PackTime)
		return result, nil
	}
	logger.Info("packed items",
		"cubes", len(packing.Cubes),
		"oversized", len(packing.OversizedGames),
		"cached", packHit,
		"duration", result.Stats.PackTime)

	// Stage 3: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, packing, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// FetchWithCacheInfo loads and filters the input items. Only collections
// fetched by username are cached; files and inline items are read as is.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, opts Options) ([]game.Item, bool, error) {
	if err := opts.ValidateForFetch(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	switch {
	case opts.Items != nil:
		return FilterItems(opts.Items, opts.Config), false, nil
	case opts.ItemsFile != "":
		items, err := kio.ImportItems(opts.ItemsFile)
		if err != nil {
			return nil, false, err
		}
		return FilterItems(items, opts.Config), false, nil
	}

	if r.Fetcher == nil {
		return nil, false, kerrors.New(kerrors.ErrCodeUnsupported, "fetching collections is not configured")
	}

	cacheKey := r.Keyer.CollectionKey(opts.Username, opts.CollectionKeyOpts())
	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, cacheKey, "collection"); ok {
			if items, err := kio.ReadItems(bytes.NewReader(data)); err == nil {
				return items, true, nil
			}
		}
	}

	items, err := r.Fetcher.FetchItems(ctx, opts.Username, opts.Refresh)
	if err != nil {
		return nil, false, err
	}
	items = FilterItems(items, opts.Config)

	var buf bytes.Buffer
	if err := kio.WriteItems(&buf, opts.Username, items); err == nil {
		r.cacheSet(ctx, cacheKey, "collection", buf.Bytes(), cache.TTLCollection)
	}
	return items, false, nil
}

// Fetch is a convenience wrapper that discards the cache hit info.
func (r *Runner) Fetch(ctx context.Context, opts Options) ([]game.Item, error) {
	items, _, err := r.FetchWithCacheInfo(ctx, opts)
	return items, err
}

// PackWithCacheInfo packs items with caching. The key covers the items and
// the whole config, so a cached result is exactly what [pack.Pack] would
// return. Progress is not reported on a cache hit.
func (r *Runner) PackWithCacheInfo(ctx context.Context, items []game.Item, opts Options) (*pack.Result, bool, error) {
	if err := opts.ValidateForPack(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	itemsHash, err := cache.HashJSON(items)
	if err != nil {
		return nil, false, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "hash items")
	}
	configHash, err := cache.HashJSON(opts.Config)
	if err != nil {
		return nil, false, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "hash config")
	}
	cacheKey := r.Keyer.PackKey(itemsHash, configHash)

	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, cacheKey, "pack"); ok {
			if res, err := kio.ReadResult(bytes.NewReader(data)); err == nil {
				return res, true, nil
			}
		}
	}

	res, err := pack.Pack(items, opts.Config, pack.Options{Progress: opts.Progress})
	if err != nil {
		return nil, false, err
	}
	if res.DroppedOverrides > 0 {
		opts.Logger.Warn("ignored malformed overrides", "count", res.DroppedOverrides)
	}

	var buf bytes.Buffer
	if err := kio.WriteResult(&buf, res); err == nil {
		r.cacheSet(ctx, cacheKey, "pack", buf.Bytes(), cache.TTLPack)
	}
	return res, false, nil
}

// Pack is a convenience wrapper that discards the cache hit info.
func (r *Runner) Pack(ctx context.Context, items []game.Item, opts Options) (*pack.Result, error) {
	res, _, err := r.PackWithCacheInfo(ctx, items, opts)
	return res, err
}

// RenderWithCacheInfo renders every requested format with caching. The hit
// flag is true only if all formats came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *pack.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	resultHash, err := cache.HashJSON(res)
	if err != nil {
		return nil, false, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "hash result")
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(resultHash, opts.ArtifactKeyOpts(format))
		if data, ok := r.cacheGet(ctx, key, "artifact"); ok {
			artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := render.RenderAll(res, missing, opts.Render)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(resultHash, opts.ArtifactKeyOpts(format))
		r.cacheSet(ctx, key, "artifact", data, cache.TTLArtifact)
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *pack.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cacheGet(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "err", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

func (r *Runner) cacheSet(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

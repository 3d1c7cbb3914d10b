// Package pipeline runs the fetch → pack → render pipeline for kallax.
//
// The CLI and the HTTP server both go through a [Runner], so caching,
// filtering and logging behave the same on every entry point.
//
// # Stages
//
//  1. Fetch: load items from BGG (by username), an items file, or the
//     caller, then apply the status and expansion filter.
//  2. Pack: run the packing engine.
//  3. Render: produce the requested output formats.
//
// Every stage is cached through the runner's [cache.Cache]. A run halted by
// the version check stops after the pack stage and renders nothing.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, bggClient, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Username = "matze"
//	opts.Formats = []string{"svg", "pdf"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Packing.Halted() {
//	    // ask the user, then rerun with opts.Config.BypassVersionWarning
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kallax/pkg/cache"
	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/pack"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
	"github.com/matzehuels/kallax/pkg/render"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = render.FormatJSON

// Options contains all configuration for a pipeline run.
// Exactly one of Username, ItemsFile and Items names the input.
type Options struct {
	Username  string      `json:"username,omitempty"`
	ItemsFile string      `json:"-"`
	Items     []game.Item `json:"items,omitempty"`

	Config  pack.Config    `json:"config"`
	Formats []string       `json:"formats,omitempty"`
	Render  render.Options `json:"render"`
	Refresh bool           `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger         `json:"-"`
	Progress func(pack.Progress) `json:"-"`

	validated bool
}

// DefaultOptions returns options carrying the default packing config.
// Decode requests over it so absent fields keep their defaults.
func DefaultOptions() Options {
	return Options{Config: pack.DefaultConfig()}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and stored records.
	RunID string

	// Items are the filtered items handed to the packer.
	Items []game.Item

	// Packing is the engine result. Check Packing.Halted before using
	// Artifacts.
	Packing *pack.Result

	// Artifacts contains rendered outputs keyed by format. Empty when the
	// run halted.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	CubeCount  int
	FetchTime  time.Duration
	PackTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit  bool `json:"fetch"`
	PackHit   bool `json:"pack"`
	RenderHit bool `json:"render"` // all artifacts came from cache
}

// ValidateAndSetDefaults checks the input source, config and formats, and
// applies defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	if err := o.ValidateForPack(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForFetch checks that exactly one input source is set.
func (o *Options) ValidateForFetch() error {
	sources := 0
	if o.Username != "" {
		sources++
		if err := kerrors.ValidateUsername(o.Username); err != nil {
			return err
		}
	}
	if o.ItemsFile != "" {
		sources++
	}
	if o.Items != nil {
		sources++
	}
	switch sources {
	case 0:
		return kerrors.New(kerrors.ErrCodeInvalidInput, "username, items file or items is required")
	case 1:
	default:
		return kerrors.New(kerrors.ErrCodeInvalidInput, "only one of username, items file and items may be set")
	}
	return nil
}

// ValidateForPack checks the packing config.
func (o *Options) ValidateForPack() error {
	return o.Config.Validate()
}

// ValidateForRender defaults and checks the output formats.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Formats = slices.Compact(o.Formats)
	return render.ValidateFormats(o.Formats)
}

// Source describes the input for logs.
func (o *Options) Source() string {
	switch {
	case o.Username != "":
		return o.Username
	case o.ItemsFile != "":
		return o.ItemsFile
	default:
		return fmt.Sprintf("%d items", len(o.Items))
	}
}

// CollectionKeyOpts returns the cache key options of the fetch stage.
// Statuses are encoded as "status=mode".
func (o *Options) CollectionKeyOpts() cache.CollectionKeyOpts {
	statuses := make([]string, 0, len(o.Config.Statuses))
	for s, mode := range o.Config.Statuses {
		statuses = append(statuses, s+"="+string(mode))
	}
	return cache.CollectionKeyOpts{
		Statuses:          statuses,
		IncludeExpansions: o.Config.IncludeExpansions,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Columns: o.Render.Columns,
		Title:   o.Render.Title,
	}
}

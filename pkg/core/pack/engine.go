package pack

import (
	"slices"

	"github.com/matzehuels/kallax/pkg/core/dims"
	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/group"
	"github.com/matzehuels/kallax/pkg/core/order"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

// Progress is reported after each cube is opened and once when packing
// completes.
type Progress struct {
	CubesOpened int
	Placed      int
	Total       int
	Done        bool
}

// Options carries optional hooks for a packing run.
type Options struct {
	// Progress, if set, is called synchronously from Pack.
	Progress func(Progress)
}

// Pack arranges items into cubes according to cfg.
//
// Excluded items are dropped first. Every remaining item is sized and
// oriented, then the version check may halt the run, returning a result
// with [StatusMissingVersions] and a nil error. Otherwise items are
// clustered, sorted, split into placeable and oversized, and packed.
//
// Pack is deterministic and does not modify items. It fails only on an
// invalid cfg ([kerrors.ErrCodeInvalidConfig]) or a broken placement
// bound ([kerrors.ErrCodeInternal]).
func Pack(items []game.Item, cfg Config, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	overrides, dropped := game.ParseOverrides(cfg.Overrides)

	included := make([]game.Item, 0, len(items))
	for _, it := range items {
		if !overrides.IsExcluded(it.Key()) {
			included = append(included, it)
		}
	}
	excluded := len(items) - len(included)

	entries := make([]*entry, len(included))
	for i := range included {
		entries[i] = prepare(&included[i], cfg.Stacking, overrides)
	}

	if state, missing := checkVersions(entries, cfg.BypassVersionWarning); state == GateHalted {
		return &Result{Status: StatusMissingVersions, Games: missing, DroppedOverrides: dropped}, nil
	}

	if !cfg.OptimizeSpace {
		clusters := group.Assign(included, group.Options{
			Expansions: cfg.GroupExpansions,
			Series:     cfg.GroupSeries,
		})
		for _, e := range entries {
			e.cluster = clusters[e.item.Key()]
		}
		less := order.Comparator(cfg.Sort)
		slices.SortStableFunc(entries, func(a, b *entry) int { return less(a.item, b.item) })
	}

	var (
		placeable []*entry
		oversized []Oversized
	)
	for _, e := range entries {
		if !dims.Oversized(e.oriented, cfg.allowRotation() && !e.overridden) {
			placeable = append(placeable, e)
			continue
		}
		if cfg.FitOversized {
			e.oriented = dims.Clamp(e.oriented)
			e.clamped = true
			placeable = append(placeable, e)
			continue
		}
		oversized = append(oversized, Oversized{Item: *e.item, Resolved: e.resolved, Oriented: e.oriented})
	}

	p := newPacker(cfg, len(placeable), opts.Progress)
	if err := p.run(placeable); err != nil {
		return nil, err
	}
	if err := verify(p.cubes, cfg.Stacking); err != nil {
		return nil, err
	}

	res := &Result{
		Status:           StatusOK,
		Cubes:            p.cubes,
		OversizedGames:   oversized,
		Stats:            computeStats(p.cubes, oversized, excluded),
		DroppedOverrides: dropped,
	}
	if n := res.Stats.TotalGames + len(oversized) + excluded; n != len(items) {
		return nil, kerrors.New(kerrors.ErrCodeInternal, "packed %d of %d items", n, len(items))
	}
	return res, nil
}

// prepare sizes and orients one item. A per-item orientation override
// replaces the global stacking mode for the x/y mapping and pins it.
func prepare(it *game.Item, stacking game.Stacking, overrides game.OverrideSet) *entry {
	var override *game.DimensionRecord
	if d, ok := overrides.DimensionsFor(it.Key()); ok {
		override = &d
	}
	resolved := dims.Resolve(it.Dimensions, override)
	st, overridden := overrides.OrientationFor(it.Key())
	if overridden {
		stacking = st
	}
	return &entry{
		item:       it,
		resolved:   resolved,
		oriented:   dims.Orient(resolved, stacking),
		overridden: overridden,
	}
}

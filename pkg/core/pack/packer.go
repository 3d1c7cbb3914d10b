package pack

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/kallax/pkg/core/dims"
	"github.com/matzehuels/kallax/pkg/core/game"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

// entry is an item on its way through the packer.
type entry struct {
	item     *game.Item
	resolved dims.Resolved
	oriented dims.Oriented
	clamped  bool
	cluster  int

	// overridden is set when a per-item orientation override fixed the
	// x/y mapping. Such items are never rotated.
	overridden bool
}

// packer assigns entries to cubes greedily. It is single use.
type packer struct {
	cfg      Config
	rotate   bool
	cubes    []*Cube
	progress func(Progress)
	total    int
	placed   int
}

func newPacker(cfg Config, total int, progress func(Progress)) *packer {
	return &packer{
		cfg:      cfg,
		rotate:   cfg.allowRotation(),
		total:    total,
		progress: progress,
	}
}

// run places every entry in order. Entries must already be sorted and free
// of oversized items.
func (p *packer) run(entries []*entry) error {
	if p.cfg.OptimizeSpace {
		entries = slices.Clone(entries)
		slices.SortStableFunc(entries, func(a, b *entry) int {
			return cmp.Compare(b.oriented.Area(), a.oriented.Area())
		})
	}
	for _, e := range entries {
		if err := p.add(e); err != nil {
			return err
		}
	}
	for _, c := range p.cubes {
		c.layout()
	}
	p.report(true)
	return nil
}

func (p *packer) add(e *entry) error {
	rotate := p.rotate && !e.overridden
	first, n := p.window()
	var (
		best     *Cube
		bestSlot slot
		bestSame bool
	)
	for _, c := range p.cubes[first : first+n] {
		s, ok := c.fit(e.oriented, p.cfg.Stacking, rotate)
		if !ok {
			continue
		}
		same := e.cluster != 0 && c.clusters[e.cluster]
		if best == nil || better(same, s, bestSame, bestSlot) {
			best, bestSlot, bestSame = c, s, same
		}
	}

	if best == nil {
		best = &Cube{ID: len(p.cubes) + 1}
		s, ok := best.fit(e.oriented, p.cfg.Stacking, rotate)
		if !ok {
			return kerrors.New(kerrors.ErrCodeInternal,
				"item %s (%.1fx%.1f) does not fit an empty cube", e.item.Key(), e.oriented.X, e.oriented.Y)
		}
		p.cubes = append(p.cubes, best)
		bestSlot = s
		best.place(e, bestSlot, p.cfg.Stacking)
		p.placed++
		p.report(false)
		return nil
	}

	best.place(e, bestSlot, p.cfg.Stacking)
	p.placed++
	return nil
}

// better reports whether candidate (same, s) beats the current best. Cubes
// are scanned in id order, so keeping the current best on a full tie
// prefers the lowest id.
func better(same bool, s slot, bestSame bool, best slot) bool {
	if same != bestSame {
		return same
	}
	return s.residual() < best.residual()-dims.Epsilon
}

// window returns the range of cubes an item may go into: every cube when
// optimizing for space, otherwise the most recently opened ones.
func (p *packer) window() (first, n int) {
	open := len(p.cubes)
	if open == 0 {
		return 0, 0
	}
	if p.cfg.OptimizeSpace {
		return 0, open
	}
	n = backfillWindow(p.cfg.BackfillPercentage, open, p.cfg.RespectSortOrder)
	return open - n, n
}

// backfillWindow is max(1, ceil(pct/100 * open)), or 1 when the sort order
// must be respected strictly.
func backfillWindow(pct float64, open int, strict bool) int {
	if strict || open <= 1 {
		return min(open, 1)
	}
	n := int(math.Ceil(pct*float64(open)/100 - dims.Epsilon))
	return min(max(n, 1), open)
}

func (p *packer) report(done bool) {
	if p.progress == nil {
		return
	}
	p.progress(Progress{
		CubesOpened: len(p.cubes),
		Placed:      p.placed,
		Total:       p.total,
		Done:        done,
	})
}

// verify re-checks the placement bounds on the finished cubes.
func verify(cubes []*Cube, stacking game.Stacking) error {
	for _, c := range cubes {
		if c.CrossUsed > dims.CubeWidth+dims.Epsilon {
			return kerrors.New(kerrors.ErrCodeInternal, "cube %d overfilled: %.2f", c.ID, c.CrossUsed)
		}
		sum := 0.0
		for _, pl := range c.Placements {
			limit := dims.CubeWidth
			if pl.TreatedAsOversized {
				limit = dims.ClampSize
			}
			if pl.Oriented.X > limit+dims.Epsilon || pl.Oriented.Y > limit+dims.Epsilon {
				return kerrors.New(kerrors.ErrCodeInternal,
					"cube %d: item %s exceeds %.1f bound", c.ID, pl.Key(), limit)
			}
			sum += pl.Oriented.X
		}
		if stacking == game.StackingHorizontal {
			for i, r := range c.Rows {
				if r.Width > dims.CubeWidth+dims.Epsilon {
					return kerrors.New(kerrors.ErrCodeInternal, "cube %d row %d overfilled: %.2f", c.ID, i, r.Width)
				}
			}
		} else if math.Abs(sum-c.CrossUsed) > 1e-6 {
			return kerrors.New(kerrors.ErrCodeInternal, "cube %d usage drifted: %.4f != %.4f", c.ID, sum, c.CrossUsed)
		}
	}
	return nil
}

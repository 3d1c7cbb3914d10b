package pack

import (
	"github.com/matzehuels/kallax/pkg/core/dims"
	"github.com/matzehuels/kallax/pkg/core/game"
)

// Placement is one item standing in a cube.
//
// Oriented is the cross-section as placed: rotated when Rotated is set,
// clamped when TreatedAsOversized is set. OffsetX and OffsetY locate the
// item's lower-left corner in the cube opening.
type Placement struct {
	game.Item
	Resolved           dims.Resolved `json:"resolvedDimensions"`
	Oriented           dims.Oriented `json:"oriented"`
	OffsetX            float64       `json:"offsetX"`
	OffsetY            float64       `json:"offsetY"`
	Row                int           `json:"row"`
	Rotated            bool          `json:"rotated,omitempty"`
	TreatedAsOversized bool          `json:"treatedAsOversized,omitempty"`
	ClusterID          int           `json:"clusterId,omitempty"`
}

// Row is a pile of flat-lying boxes sharing one shelf level in a cube.
type Row struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OffsetY float64 `json:"offsetY"`
}

// Cube is one compartment. Ids are 1-based in opening order.
//
// CrossUsed is the consumed share of the cross axis the stacking mode fills:
// the summed widths of upright boxes, or the summed row heights of piles.
type Cube struct {
	ID         int         `json:"id"`
	Placements []Placement `json:"games"`
	CrossUsed  float64     `json:"crossUsed"`
	Rows       []Row       `json:"rows,omitempty"`

	clusters map[int]bool
}

// Utilization is CrossUsed as a percentage of the cube opening.
func (c *Cube) Utilization() float64 {
	return c.CrossUsed / dims.CubeWidth * 100
}

// slot is a candidate position for an item in a cube.
type slot struct {
	oriented dims.Oriented
	rotated  bool
	row      int
	used     float64 // CrossUsed after placement
}

func (s slot) residual() float64 { return dims.CubeWidth - s.used }

// fit finds the best slot for o in c, trying the swapped cross-section too
// when rotation is allowed. The unrotated mapping wins ties.
func (c *Cube) fit(o dims.Oriented, stacking game.Stacking, rotate bool) (slot, bool) {
	best, ok := c.fitMapping(o, stacking)
	if !rotate {
		return best, ok
	}
	alt, altOK := c.fitMapping(o.Swapped(), stacking)
	if !altOK {
		return best, ok
	}
	alt.rotated = true
	if !ok || alt.used < best.used-dims.Epsilon {
		return alt, true
	}
	return best, ok
}

func (c *Cube) fitMapping(o dims.Oriented, stacking game.Stacking) (slot, bool) {
	if !o.FitsOpening() {
		return slot{}, false
	}
	if stacking != game.StackingHorizontal {
		used := c.CrossUsed + o.X
		if used > dims.CubeWidth+dims.Epsilon {
			return slot{}, false
		}
		return slot{oriented: o, used: used}, true
	}

	for i, r := range c.Rows {
		if r.Width+o.X > dims.CubeWidth+dims.Epsilon {
			continue
		}
		used := c.CrossUsed - r.Height + max(r.Height, o.Y)
		if used > dims.CubeHeight+dims.Epsilon {
			continue
		}
		return slot{oriented: o, row: i, used: used}, true
	}
	used := c.CrossUsed + o.Y
	if used > dims.CubeHeight+dims.Epsilon {
		return slot{}, false
	}
	return slot{oriented: o, row: len(c.Rows), used: used}, true
}

// place commits e to c at s.
func (c *Cube) place(e *entry, s slot, stacking game.Stacking) {
	p := Placement{
		Item:               *e.item,
		Resolved:           e.resolved,
		Oriented:           s.oriented,
		Row:                s.row,
		Rotated:            s.rotated,
		TreatedAsOversized: e.clamped,
		ClusterID:          e.cluster,
	}
	if stacking == game.StackingHorizontal {
		if s.row == len(c.Rows) {
			c.Rows = append(c.Rows, Row{})
		}
		r := &c.Rows[s.row]
		p.OffsetX = r.Width
		r.Width += s.oriented.X
		r.Height = max(r.Height, s.oriented.Y)
	} else {
		p.OffsetX = c.CrossUsed
	}
	c.CrossUsed = s.used
	c.Placements = append(c.Placements, p)
	if e.cluster != 0 {
		if c.clusters == nil {
			c.clusters = make(map[int]bool)
		}
		c.clusters[e.cluster] = true
	}
}

// layout fixes row and placement vertical offsets once the cube is full.
// Rows can grow after later rows were opened, so this runs last.
func (c *Cube) layout() {
	y := 0.0
	for i := range c.Rows {
		c.Rows[i].OffsetY = y
		y += c.Rows[i].Height
	}
	for i := range c.Placements {
		p := &c.Placements[i]
		if p.Row < len(c.Rows) {
			p.OffsetY = c.Rows[p.Row].OffsetY
		}
	}
}

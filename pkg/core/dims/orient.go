package dims

import (
	"cmp"
	"slices"

	"github.com/matzehuels/kallax/pkg/core/game"
)

// Kallax cube interior, in inches.
const (
	CubeWidth  = 13.0
	CubeHeight = 13.0
	CubeDepth  = 15.0
)

// ClampSize is the cross-axis size given to oversized boxes the user asked
// to fit anyway. It sits just under the cube opening.
const ClampSize = 12.8

// Epsilon absorbs floating point noise in capacity comparisons.
const Epsilon = 1e-9

// Oriented is a box mapped onto cube axes: X across the opening, Y up the
// opening, Z into the cube. Z may exceed [CubeDepth]; such boxes stick out.
type Oriented struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Orient maps resolved dimensions onto cube axes. The longest side always
// runs along Z. Vertical stacking puts the middle side up (Y) and the
// shortest across (X); horizontal stacking does the opposite.
func Orient(r Resolved, stacking game.Stacking) Oriented {
	sides := []float64{r.Length, r.Width, r.Depth}
	slices.SortFunc(sides, func(a, b float64) int { return cmp.Compare(b, a) })
	longest, middle, shortest := sides[0], sides[1], sides[2]

	if stacking == game.StackingHorizontal {
		return Oriented{X: middle, Y: shortest, Z: longest}
	}
	return Oriented{X: shortest, Y: middle, Z: longest}
}

// Swapped returns o rotated a quarter turn about the depth axis.
func (o Oriented) Swapped() Oriented {
	return Oriented{X: o.Y, Y: o.X, Z: o.Z}
}

// Area is the cross-section the box presents to the cube opening.
func (o Oriented) Area() float64 {
	return o.X * o.Y
}

// FitsOpening reports whether the cross-section fits the cube opening.
func (o Oriented) FitsOpening() bool {
	return o.X <= CubeWidth+Epsilon && o.Y <= CubeHeight+Epsilon
}

// Oversized reports whether no allowed mapping of o fits the cube opening.
func Oversized(o Oriented, allowRotation bool) bool {
	if o.FitsOpening() {
		return false
	}
	if allowRotation && o.Swapped().FitsOpening() {
		return false
	}
	return true
}

// Clamp caps both cross-axis sides at [ClampSize].
func Clamp(o Oriented) Oriented {
	return Oriented{X: min(o.X, ClampSize), Y: min(o.Y, ClampSize), Z: o.Z}
}

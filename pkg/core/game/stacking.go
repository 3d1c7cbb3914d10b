package game

import "fmt"

// Stacking is how boxes stand in a cube.
type Stacking string

const (
	// StackingVertical stands boxes upright side by side, like books.
	StackingVertical Stacking = "vertical"
	// StackingHorizontal lays boxes flat in piles.
	StackingHorizontal Stacking = "horizontal"
)

// Valid reports whether s is a known stacking mode.
func (s Stacking) Valid() bool {
	return s == StackingVertical || s == StackingHorizontal
}

// ParseStacking parses a stacking mode name.
func ParseStacking(s string) (Stacking, error) {
	st := Stacking(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid stacking %q (must be vertical or horizontal)", s)
	}
	return st, nil
}

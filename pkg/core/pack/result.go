package pack

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/kallax/pkg/core/dims"
	"github.com/matzehuels/kallax/pkg/core/game"
)

// Status is the outcome of a packing run.
type Status string

const (
	StatusOK              Status = "ok"
	StatusMissingVersions Status = "missing_versions"
)

// Oversized is an item that fits no cube and was left off the shelf.
type Oversized struct {
	game.Item
	Resolved dims.Resolved `json:"resolvedDimensions"`
	Oriented dims.Oriented `json:"oriented"`
}

// Result is the outcome of [Pack]. When Status is [StatusMissingVersions]
// only Games is set and nothing was packed.
type Result struct {
	Status         Status
	Cubes          []*Cube
	OversizedGames []Oversized
	Stats          Stats
	Games          []MissingVersion

	// DroppedOverrides counts malformed override entries that were ignored.
	DroppedOverrides int
}

// Halted reports whether the version check stopped the run.
func (r *Result) Halted() bool {
	return r.Status == StatusMissingVersions
}

// Placed returns every placement in cube order.
func (r *Result) Placed() []Placement {
	var out []Placement
	for _, c := range r.Cubes {
		out = append(out, c.Placements...)
	}
	return out
}

type okJSON struct {
	Status           Status      `json:"status"`
	Cubes            []*Cube     `json:"cubes"`
	OversizedGames   []Oversized `json:"oversizedGames"`
	Stats            Stats       `json:"stats"`
	DroppedOverrides int         `json:"droppedOverrides,omitempty"`
}

type haltJSON struct {
	Status Status           `json:"status"`
	Games  []MissingVersion `json:"games"`
}

// MarshalJSON writes the shape matching Status.
func (r *Result) MarshalJSON() ([]byte, error) {
	switch r.Status {
	case StatusMissingVersions:
		return json.Marshal(haltJSON{Status: r.Status, Games: nonNil(r.Games)})
	case StatusOK:
		return json.Marshal(okJSON{
			Status:           r.Status,
			Cubes:            nonNil(r.Cubes),
			OversizedGames:   nonNil(r.OversizedGames),
			Stats:            r.Stats,
			DroppedOverrides: r.DroppedOverrides,
		})
	default:
		return nil, fmt.Errorf("unknown result status %q", r.Status)
	}
}

// UnmarshalJSON reads either result shape.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		okJSON
		Games []MissingVersion `json:"games"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Status {
	case StatusOK, StatusMissingVersions:
	default:
		return fmt.Errorf("unknown result status %q", raw.Status)
	}
	*r = Result{
		Status:           raw.Status,
		Cubes:            raw.Cubes,
		OversizedGames:   raw.OversizedGames,
		Stats:            raw.Stats,
		Games:            raw.Games,
		DroppedOverrides: raw.DroppedOverrides,
	}
	return nil
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

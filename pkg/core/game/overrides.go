package game

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Overrides is the wire form of the user's per-item overrides as it arrives
// from request payloads and profile files. Entries are loosely typed so a
// single bad entry can be dropped without failing the whole decode.
type Overrides struct {
	ExcludedVersions   []OverrideEntry `json:"excludedVersions,omitempty" toml:"excludedVersions" yaml:"excludedVersions"`
	StackingOverrides  []OverrideEntry `json:"stackingOverrides,omitempty" toml:"stackingOverrides" yaml:"stackingOverrides"`
	DimensionOverrides []OverrideEntry `json:"dimensionOverrides,omitempty" toml:"dimensionOverrides" yaml:"dimensionOverrides"`
}

// OverrideEntry addresses one item either by Key ("gameId:versionId") or by
// the GameID/VersionID pair. Orientation is read by stacking overrides and
// Length/Width/Depth by dimension overrides.
type OverrideEntry struct {
	Key         string `json:"key,omitempty" toml:"key" yaml:"key"`
	GameID      any    `json:"gameId,omitempty" toml:"gameId" yaml:"gameId"`
	VersionID   any    `json:"versionId,omitempty" toml:"versionId" yaml:"versionId"`
	Orientation string `json:"orientation,omitempty" toml:"orientation" yaml:"orientation"`
	Length      any    `json:"length,omitempty" toml:"length" yaml:"length"`
	Width       any    `json:"width,omitempty" toml:"width" yaml:"width"`
	Depth       any    `json:"depth,omitempty" toml:"depth" yaml:"depth"`
}

// OverrideSet is the validated, keyed form of [Overrides].
type OverrideSet struct {
	Excluded    map[Key]bool
	Orientation map[Key]Stacking
	Dimensions  map[Key]DimensionRecord
}

// NewOverrideSet returns an empty set.
func NewOverrideSet() OverrideSet {
	return OverrideSet{
		Excluded:    make(map[Key]bool),
		Orientation: make(map[Key]Stacking),
		Dimensions:  make(map[Key]DimensionRecord),
	}
}

// IsExcluded reports whether the item must be left out of the run.
func (s OverrideSet) IsExcluded(k Key) bool { return s.Excluded[k] }

// OrientationFor returns the forced orientation for k, if any.
func (s OverrideSet) OrientationFor(k Key) (Stacking, bool) {
	o, ok := s.Orientation[k]
	return o, ok
}

// DimensionsFor returns the user-entered dimensions for k, if any. The
// returned record is always of kind [KindUser].
func (s OverrideSet) DimensionsFor(k Key) (DimensionRecord, bool) {
	d, ok := s.Dimensions[k]
	return d, ok
}

// ParseOverrides validates the wire overrides. Malformed entries (bad ids,
// unknown orientation, non-positive dimensions) are dropped; the number of
// dropped entries is returned for diagnostics. Later entries for the same
// key replace earlier ones.
func ParseOverrides(o Overrides) (OverrideSet, int) {
	set := NewOverrideSet()
	dropped := 0

	for _, e := range o.ExcludedVersions {
		k, ok := e.key()
		if !ok {
			dropped++
			continue
		}
		set.Excluded[k] = true
	}

	for _, e := range o.StackingOverrides {
		k, ok := e.key()
		st := Stacking(strings.ToLower(strings.TrimSpace(e.Orientation)))
		if !ok || !st.Valid() {
			dropped++
			continue
		}
		set.Orientation[k] = st
	}

	for _, e := range o.DimensionOverrides {
		k, ok := e.key()
		if !ok {
			dropped++
			continue
		}
		l, lok := toFloat(e.Length)
		w, wok := toFloat(e.Width)
		d, dok := toFloat(e.Depth)
		rec := DimensionRecord{Kind: KindUser, Length: l, Width: w, Depth: d}
		if !lok || !wok || !dok || !rec.Complete() {
			dropped++
			continue
		}
		set.Dimensions[k] = rec
	}

	return set, dropped
}

func (e OverrideEntry) key() (Key, bool) {
	if e.Key != "" {
		k, err := ParseKey(e.Key)
		return k, err == nil
	}
	gameID, ok := toInt(e.GameID)
	if !ok || gameID <= 0 {
		return Key{}, false
	}
	versionID := 0
	if e.VersionID != nil {
		v, ok := toInt(e.VersionID)
		if !ok || v < 0 {
			return Key{}, false
		}
		versionID = v
	}
	return Key{GameID: gameID, VersionID: versionID}, true
}

// toInt accepts the numeric shapes produced by the JSON, TOML and YAML
// decoders as well as numeric strings. Fractional values are rejected.
func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return toFloat(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return toFloat(f)
	default:
		return 0, false
	}
}

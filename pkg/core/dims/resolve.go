// Package dims resolves box sizes and maps them onto cube axes.
//
// [Resolve] picks one authoritative length/width/depth triple per item from
// its provenance-tagged candidates. [Orient] turns that triple into
// cross-axis (x, y) and depth-axis (z) extents for a given stacking mode, and
// [Oversized] decides whether any allowed mapping fits the cube opening.
package dims

import (
	"github.com/matzehuels/kallax/pkg/core/game"
)

// Default footprint used when an item has no usable dimensions at all.
const (
	DefaultLength = 11.7
	DefaultWidth  = 11.7
	DefaultDepth  = 2.8
)

// Flags are the diagnostics recorded while resolving an item's dimensions.
type Flags struct {
	// MissingVersion: no version was selected on BGG and a guessed size was used.
	MissingVersion bool `json:"missingVersion,omitempty"`
	// UsedAlternateVersionDims: the selected version has no size on BGG and
	// another version's size was used instead.
	UsedAlternateVersionDims bool `json:"usedAlternateVersionDims,omitempty"`
	// DefaultDimensions: the placeholder footprint was used.
	DefaultDimensions bool `json:"bggDefaultDimensions,omitempty"`
}

// Resolved is the chosen box size and where it came from.
type Resolved struct {
	Length float64            `json:"length"`
	Width  float64            `json:"width"`
	Depth  float64            `json:"depth"`
	Source game.DimensionKind `json:"source"`
	Flags  Flags              `json:"flags"`
}

// Resolve picks the authoritative dimensions for one item.
//
// A non-nil override is treated as a user record and wins outright.
// Otherwise the first complete record is taken in tier order user, version
// (not marked missing), guessed, default; records of the same tier are tried
// in list order. When no record is usable the fixed default footprint is
// returned. Resolve never fails.
func Resolve(records []game.DimensionRecord, override *game.DimensionRecord) Resolved {
	if override != nil && override.Complete() {
		return fromRecord(*override, game.KindUser)
	}

	var hasVersion, versionMissing bool
	for _, r := range records {
		if r.Kind == game.KindVersion {
			hasVersion = true
			if r.Missing {
				versionMissing = true
			}
		}
	}

	for _, kind := range game.Kinds {
		for _, r := range records {
			if r.Kind != kind || !r.Complete() {
				continue
			}
			if kind == game.KindVersion && r.Missing {
				continue
			}
			res := fromRecord(r, kind)
			switch kind {
			case game.KindUser, game.KindVersion:
			case game.KindGuessed:
				res.Flags.MissingVersion = !hasVersion
				res.Flags.UsedAlternateVersionDims = versionMissing
			case game.KindDefault:
				res.Flags.DefaultDimensions = true
			}
			return res
		}
	}

	return Resolved{
		Length: DefaultLength,
		Width:  DefaultWidth,
		Depth:  DefaultDepth,
		Source: game.KindDefault,
		Flags:  Flags{DefaultDimensions: true},
	}
}

func fromRecord(r game.DimensionRecord, kind game.DimensionKind) Resolved {
	return Resolved{Length: r.Length, Width: r.Width, Depth: r.Depth, Source: kind}
}

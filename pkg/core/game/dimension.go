package game

import (
	"fmt"
	"math"
)

// DimensionKind is the provenance tier of a dimension record.
type DimensionKind int

const (
	// KindUser is a size entered by the user; it always wins.
	KindUser DimensionKind = iota
	// KindVersion is the size of the version the user selected on BGG.
	KindVersion
	// KindGuessed is the size of another version of the same game.
	KindGuessed
	// KindDefault is a placeholder footprint used when nothing better exists.
	KindDefault
)

// Kinds lists every dimension kind in resolution priority order.
var Kinds = []DimensionKind{KindUser, KindVersion, KindGuessed, KindDefault}

var kindNames = map[DimensionKind]string{
	KindUser:    "user",
	KindVersion: "version",
	KindGuessed: "guessed",
	KindDefault: "default",
}

// String returns the wire name of the kind.
func (k DimensionKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("DimensionKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k DimensionKind) MarshalText() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown dimension kind %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names are an
// error: the set of kinds is closed.
func (k *DimensionKind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown dimension kind %q", string(b))
}

// DimensionRecord is one candidate box size for an item, in inches.
type DimensionRecord struct {
	Kind    DimensionKind `json:"type"`
	Length  float64       `json:"length"`
	Width   float64       `json:"width"`
	Depth   float64       `json:"depth"`
	Missing bool          `json:"missing,omitempty"`
	Weight  *float64      `json:"weight,omitempty"`
}

// Complete reports whether all three sides are positive finite numbers.
func (r DimensionRecord) Complete() bool {
	return positive(r.Length) && positive(r.Width) && positive(r.Depth)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

package pack

import (
	"math"
	"slices"

	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/order"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

// DefaultBackfill is the backfill percentage used when none is configured.
const DefaultBackfill = 20

// StatusMode says whether items carrying a collection status are kept.
type StatusMode string

const (
	StatusInclude StatusMode = "include"
	StatusExclude StatusMode = "exclude"
)

// Config is the packing request. Statuses and IncludeExpansions are read by
// the caller's item filter, not by [Pack]; they live here so a profile or
// request carries the whole configuration.
type Config struct {
	Stacking  game.Stacking         `json:"stacking" toml:"stacking" yaml:"stacking"`
	Statuses  map[string]StatusMode `json:"statuses,omitempty" toml:"statuses" yaml:"statuses"`
	Sort      []order.Rule          `json:"sort,omitempty" toml:"sort" yaml:"sort"`
	Overrides game.Overrides        `json:"overrides" toml:"overrides" yaml:"overrides"`

	LockRotation         bool `json:"lockRotation" toml:"lockRotation" yaml:"lockRotation"`
	OptimizeSpace        bool `json:"optimizeSpace" toml:"optimizeSpace" yaml:"optimizeSpace"`
	RespectSortOrder     bool `json:"respectSortOrder" toml:"respectSortOrder" yaml:"respectSortOrder"`
	FitOversized         bool `json:"fitOversized" toml:"fitOversized" yaml:"fitOversized"`
	GroupExpansions      bool `json:"groupExpansions" toml:"groupExpansions" yaml:"groupExpansions"`
	GroupSeries          bool `json:"groupSeries" toml:"groupSeries" yaml:"groupSeries"`
	IncludeExpansions    bool `json:"includeExpansions" toml:"includeExpansions" yaml:"includeExpansions"`
	BypassVersionWarning bool `json:"bypassVersionWarning" toml:"bypassVersionWarning" yaml:"bypassVersionWarning"`

	// BackfillPercentage (0-100) sets how many recently opened cubes a
	// later item may go back to.
	BackfillPercentage float64 `json:"backfillPercentage" toml:"backfillPercentage" yaml:"backfillPercentage"`
}

// DefaultConfig returns the configuration used when the caller sets nothing.
// Decode requests and profiles over it so absent fields keep these values.
// No status filter is set, so every item is kept.
func DefaultConfig() Config {
	return Config{
		Stacking:           game.StackingVertical,
		Sort:               slices.Clone(order.DefaultRules),
		IncludeExpansions:  true,
		BackfillPercentage: DefaultBackfill,
	}
}

// Validate checks the configuration. It does not look at overrides:
// malformed override entries are dropped during packing instead.
func (c Config) Validate() error {
	if !c.Stacking.Valid() {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "invalid stacking %q (must be vertical or horizontal)", c.Stacking)
	}
	if math.IsNaN(c.BackfillPercentage) || c.BackfillPercentage < 0 || c.BackfillPercentage > 100 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "backfillPercentage must be between 0 and 100, got %v", c.BackfillPercentage)
	}
	for status, mode := range c.Statuses {
		if mode != StatusInclude && mode != StatusExclude {
			return kerrors.New(kerrors.ErrCodeInvalidConfig, "status %q: invalid mode %q (must be include or exclude)", status, mode)
		}
	}
	if err := order.Validate(c.Sort); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "invalid sort rules")
	}
	return nil
}

// allowRotation reports whether the packer may swap an item's cross axes.
func (c Config) allowRotation() bool {
	return c.OptimizeSpace || !c.LockRotation
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kallax/pkg/config"
	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/order"
	"github.com/matzehuels/kallax/pkg/core/pack"
)

// configFlags binds the packing config to command flags. Flags the user
// sets win over the profile, which wins over the defaults.
type configFlags struct {
	profile string

	stacking string
	statuses []string
	sort     []string
	exclude  []string
	backfill float64

	lockRotation     bool
	optimizeSpace    bool
	respectSortOrder bool
	fitOversized     bool
	groupExpansions  bool
	groupSeries      bool
	noExpansions     bool
	yes              bool
}

func (f *configFlags) register(cmd *cobra.Command) {
	def := pack.DefaultConfig()
	fl := cmd.Flags()
	fl.StringVarP(&f.profile, "profile", "p", "", "packing profile (.toml, .yaml or .json)")
	fl.StringVar(&f.stacking, "stacking", string(def.Stacking), "box orientation: vertical or horizontal")
	fl.StringSliceVar(&f.statuses, "status", nil, "status filter, e.g. own or fortrade=exclude (repeatable)")
	fl.StringSliceVar(&f.sort, "sort", nil, "sort rule field[:asc|desc], in priority order (repeatable)")
	fl.StringSliceVar(&f.exclude, "exclude", nil, "leave out a gameId:versionId (repeatable)")
	fl.Float64Var(&f.backfill, "backfill", def.BackfillPercentage, "percentage of open cubes later games may go back to")
	fl.BoolVar(&f.lockRotation, "lock-rotation", false, "never turn boxes within a cube")
	fl.BoolVar(&f.optimizeSpace, "optimize", false, "ignore sort and grouping, pack as tightly as possible")
	fl.BoolVar(&f.respectSortOrder, "strict-order", false, "never place a game in an earlier cube")
	fl.BoolVar(&f.fitOversized, "fit-oversized", false, "squeeze boxes larger than a cube in anyway")
	fl.BoolVar(&f.groupExpansions, "group-expansions", false, "keep expansions with their base game")
	fl.BoolVar(&f.groupSeries, "group-series", false, "keep games of a series together")
	fl.BoolVar(&f.noExpansions, "no-expansions", false, "leave expansions out")
	fl.BoolVarP(&f.yes, "yes", "y", false, "pack even if some games have no version selected")
}

// build assembles the config from defaults, the profile and changed flags.
func (f *configFlags) build(cmd *cobra.Command) (pack.Config, error) {
	cfg := pack.DefaultConfig()
	if f.profile != "" {
		var err error
		if cfg, err = config.LoadProfile(f.profile); err != nil {
			return pack.Config{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("stacking") {
		st, err := game.ParseStacking(f.stacking)
		if err != nil {
			return pack.Config{}, err
		}
		cfg.Stacking = st
	}
	if changed("status") {
		statuses, err := parseStatuses(f.statuses)
		if err != nil {
			return pack.Config{}, err
		}
		cfg.Statuses = statuses
	}
	if changed("sort") {
		rules, err := parseSortRules(f.sort)
		if err != nil {
			return pack.Config{}, err
		}
		cfg.Sort = rules
	}
	for _, key := range f.exclude {
		cfg.Overrides.ExcludedVersions = append(cfg.Overrides.ExcludedVersions, game.OverrideEntry{Key: key})
	}
	if changed("backfill") {
		cfg.BackfillPercentage = f.backfill
	}

	setBool := func(name string, dst *bool, v bool) {
		if changed(name) {
			*dst = v
		}
	}
	setBool("lock-rotation", &cfg.LockRotation, f.lockRotation)
	setBool("optimize", &cfg.OptimizeSpace, f.optimizeSpace)
	setBool("strict-order", &cfg.RespectSortOrder, f.respectSortOrder)
	setBool("fit-oversized", &cfg.FitOversized, f.fitOversized)
	setBool("group-expansions", &cfg.GroupExpansions, f.groupExpansions)
	setBool("group-series", &cfg.GroupSeries, f.groupSeries)
	setBool("no-expansions", &cfg.IncludeExpansions, !f.noExpansions)
	setBool("yes", &cfg.BypassVersionWarning, f.yes)

	return cfg, cfg.Validate()
}

// parseStatuses reads "status" (include) and "status=mode" entries.
func parseStatuses(entries []string) (map[string]pack.StatusMode, error) {
	out := make(map[string]pack.StatusMode, len(entries))
	for _, e := range entries {
		name, mode, found := strings.Cut(e, "=")
		if !found {
			mode = string(pack.StatusInclude)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid status %q", e)
		}
		out[name] = pack.StatusMode(strings.TrimSpace(mode))
	}
	return out, nil
}

// parseSortRules reads "field" and "field:direction" entries.
func parseSortRules(entries []string) ([]order.Rule, error) {
	rules := make([]order.Rule, 0, len(entries))
	for _, e := range entries {
		field, dir, _ := strings.Cut(e, ":")
		if field == "" {
			return nil, fmt.Errorf("invalid sort rule %q", e)
		}
		r := order.Rule{Field: order.Field(strings.TrimSpace(field)), Order: order.Asc}
		if dir != "" {
			r.Order = order.Direction(strings.ToLower(strings.TrimSpace(dir)))
		}
		rules = append(rules, r)
	}
	return rules, nil
}

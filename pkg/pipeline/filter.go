package pipeline

import (
	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/pack"
)

// FilterItems applies the collection filter of cfg.
//
// An item carrying any status set to exclude is dropped. If at least one
// status is set to include, an item must carry one of them. Expansions are
// dropped unless cfg.IncludeExpansions is set. Order is preserved.
func FilterItems(items []game.Item, cfg pack.Config) []game.Item {
	var include, exclude []string
	for status, mode := range cfg.Statuses {
		switch mode {
		case pack.StatusInclude:
			include = append(include, status)
		case pack.StatusExclude:
			exclude = append(exclude, status)
		}
	}

	out := make([]game.Item, 0, len(items))
	for _, it := range items {
		if it.IsExpansion && !cfg.IncludeExpansions {
			continue
		}
		if hasAny(it, exclude) {
			continue
		}
		if len(include) > 0 && !hasAny(it, include) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func hasAny(it game.Item, statuses []string) bool {
	for _, s := range statuses {
		if it.HasStatus(s) {
			return true
		}
	}
	return false
}

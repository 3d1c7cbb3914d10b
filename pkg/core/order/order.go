// Package order sorts items by a chain of user-chosen rules.
//
// Rules are applied in sequence: the first rule that tells two items apart
// decides their order. The sort is stable, so items equal under every rule
// keep their input order.
//
// Text comparisons use Unicode case folding. Items with no value for a text
// field, and unranked items for the rank field, always sort after items that
// have one, whatever the rule's direction.
package order

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/matzehuels/kallax/pkg/core/game"
)

// Direction is the order a rule sorts in.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Rule is one link in the comparator chain. A nil Enabled counts as enabled.
type Rule struct {
	Field   Field     `json:"field" toml:"field" yaml:"field"`
	Order   Direction `json:"order" toml:"order" yaml:"order"`
	Enabled *bool     `json:"enabled,omitempty" toml:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the rule takes part in sorting.
func (r Rule) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// DefaultRules is the chain used when no rule is enabled.
var DefaultRules = []Rule{{Field: FieldName, Order: Asc}}

// Validate checks every rule, enabled or not, for a known field and
// direction. An empty direction is accepted and means ascending.
func Validate(rules []Rule) error {
	for i, r := range rules {
		if _, ok := fields[r.Field]; !ok {
			return fmt.Errorf("sort rule %d: unknown field %q", i, r.Field)
		}
		switch r.Order {
		case Asc, Desc, "":
		default:
			return fmt.Errorf("sort rule %d: invalid order %q (must be asc or desc)", i, r.Order)
		}
	}
	return nil
}

// Active returns the enabled rules, or [DefaultRules] when there are none.
func Active(rules []Rule) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.IsEnabled() {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return DefaultRules
	}
	return out
}

// Comparator returns a three-way comparison over items for the enabled
// rules. Rules with unknown fields are skipped; call [Validate] first to
// reject them instead.
func Comparator(rules []Rule) func(a, b *game.Item) int {
	active := Active(rules)
	return func(a, b *game.Item) int {
		for _, r := range active {
			f, ok := fields[r.Field]
			if !ok {
				continue
			}
			if c := f.compare(a, b, r.Order == Desc); c != 0 {
				return c
			}
		}
		return 0
	}
}

// Sort stably sorts items in place.
func Sort(items []game.Item, rules []Rule) {
	less := Comparator(rules)
	slices.SortStableFunc(items, func(a, b game.Item) int { return less(&a, &b) })
}

// compareText orders folded strings, with empty values last in both
// directions.
func compareText(a, b string, desc bool) int {
	a, b = fold(a), fold(b)
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return direct(strings.Compare(a, b), desc)
}

// compareRank orders ranks with nil and zero last in both directions.
func compareRank(a, b *int, desc bool) int {
	av, bv := rankValue(a), rankValue(b)
	switch {
	case av == 0 && bv == 0:
		return 0
	case av == 0:
		return 1
	case bv == 0:
		return -1
	}
	return direct(cmp.Compare(av, bv), desc)
}

func compareNumber[T cmp.Ordered](a, b T, desc bool) int {
	return direct(cmp.Compare(a, b), desc)
}

func direct(c int, desc bool) int {
	if desc {
		return -c
	}
	return c
}

func rankValue(r *int) int {
	if r == nil {
		return 0
	}
	return *r
}

func fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

func first(xs []string) string {
	if len(xs) == 0 {
		return ""
	}
	return xs[0]
}

// Package group finds soft clusters of items that belong on the same shelf.
//
// Two kinds of link join items: an expansion is linked to every version of
// its base game, and items sharing a series family tag ("Series: ...") are
// linked to each other. Linked items form clusters by transitive closure.
// Clusters are hints for the packer's cube choice, never hard constraints.
package group

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/matzehuels/kallax/pkg/core/game"
)

// SeriesPrefix marks a family tag as a series.
const SeriesPrefix = "series:"

// Options selects which links are followed.
type Options struct {
	Expansions bool
	Series     bool
}

// Enabled reports whether any link kind is on.
func (o Options) Enabled() bool { return o.Expansions || o.Series }

// Reason says why two items are linked.
type Reason string

const (
	ReasonExpansion Reason = "expansion"
	ReasonSeries    Reason = "series"
)

// Link joins two items. For expansion links From is the expansion and To a
// version of its base game. Label carries the series name for series links.
type Link struct {
	From   game.Key
	To     game.Key
	Reason Reason
	Label  string
}

// Links lists every link between items in input order. For each series only
// consecutive members are linked, which is enough to connect them.
func Links(items []game.Item, opts Options) []Link {
	var links []Link

	if opts.Expansions {
		byGame := make(map[int][]int)
		for i, it := range items {
			byGame[it.GameID] = append(byGame[it.GameID], i)
		}
		for _, it := range items {
			for _, base := range it.ExpansionOf {
				if base == it.GameID {
					continue
				}
				for _, j := range byGame[base] {
					links = append(links, Link{From: it.Key(), To: items[j].Key(), Reason: ReasonExpansion})
				}
			}
		}
	}

	if opts.Series {
		fold := cases.Fold()
		last := make(map[string]game.Key)
		labels := make(map[string]string)
		for _, it := range items {
			seen := make(map[string]bool)
			for _, fam := range it.Families {
				name, ok := seriesName(fam)
				if !ok {
					continue
				}
				key := fold.String(name)
				if seen[key] {
					continue
				}
				seen[key] = true
				if prev, ok := last[key]; ok {
					links = append(links, Link{From: prev, To: it.Key(), Reason: ReasonSeries, Label: labels[key]})
				} else {
					labels[key] = name
				}
				last[key] = it.Key()
			}
		}
	}

	return links
}

// Assign maps every clustered item to a cluster id. Ids start at 1 and are
// numbered by the first member's position in items. Items with no link are
// left out of the map.
func Assign(items []game.Item, opts Options) map[game.Key]int {
	out := make(map[game.Key]int)
	if !opts.Enabled() || len(items) == 0 {
		return out
	}

	index := make(map[game.Key]int, len(items))
	for i, it := range items {
		if _, dup := index[it.Key()]; !dup {
			index[it.Key()] = i
		}
	}

	uf := newUnionFind(len(items))
	linked := make([]bool, len(items))
	for _, l := range Links(items, opts) {
		a, b := index[l.From], index[l.To]
		uf.union(a, b)
		linked[a], linked[b] = true, true
	}

	ids := make(map[int]int)
	for i, it := range items {
		if !linked[i] {
			continue
		}
		root := uf.find(i)
		id, ok := ids[root]
		if !ok {
			id = len(ids) + 1
			ids[root] = id
		}
		out[it.Key()] = id
	}
	return out
}

// Cluster is one group of linked items, members in input order.
type Cluster struct {
	ID      int
	Members []game.Key
}

// Clusters groups an assignment by id, in id order.
func Clusters(items []game.Item, assign map[game.Key]int) []Cluster {
	var out []Cluster
	seen := make(map[game.Key]bool)
	for _, it := range items {
		id, ok := assign[it.Key()]
		if !ok || seen[it.Key()] {
			continue
		}
		seen[it.Key()] = true
		for len(out) < id {
			out = append(out, Cluster{ID: len(out) + 1})
		}
		out[id-1].Members = append(out[id-1].Members, it.Key())
	}
	return out
}

func seriesName(family string) (string, bool) {
	f := strings.TrimSpace(family)
	if len(f) < len(SeriesPrefix) || !strings.EqualFold(f[:len(SeriesPrefix)], SeriesPrefix) {
		return "", false
	}
	name := strings.TrimSpace(f[len(SeriesPrefix):])
	return name, name != ""
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}

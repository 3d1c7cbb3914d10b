package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/group"
)

// ClustersDOT writes the grouping of items as a Graphviz digraph. Each
// cluster becomes a subgraph; expansion links are solid, series links
// dashed and labelled with the series. Unlinked items are left out.
func ClustersDOT(items []game.Item, opts group.Options) string {
	assign := group.Assign(items, opts)
	names := make(map[game.Key]string, len(items))
	for _, it := range items {
		if _, ok := names[it.Key()]; !ok {
			names[it.Key()] = it.DisplayName()
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph clusters {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("\n")

	for _, c := range group.Clusters(items, assign) {
		col := colorFor(0, c.ID)
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", c.ID)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("cluster %d", c.ID))
		buf.WriteString("    style=\"rounded\";\n")
		for _, k := range c.Members {
			fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=%q];\n", k.String(), names[k], col.hex())
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, l := range group.Links(items, opts) {
		switch l.Reason {
		case group.ReasonSeries:
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, label=%q];\n", l.From.String(), l.To.String(), l.Label)
		default:
			fmt.Fprintf(&buf, "  %q -> %q;\n", l.From.String(), l.To.String())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ClustersSVG lays out a DOT graph with Graphviz and returns the SVG.
func ClustersSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

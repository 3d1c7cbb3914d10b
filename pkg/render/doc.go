// Package render turns packing results into files.
//
// # Formats
//
// Five formats are supported:
//
//   - json: the packing result as indented JSON
//   - svg: a front view of the shelf, one cell per cube
//   - pdf: one page per cube plus a summary page
//   - xlsx: a packing list workbook (Cubes, Oversized and Summary sheets)
//   - labels: printable shelf labels, one per cube, each with a QR code
//
// [Render] produces one format, [RenderAll] several:
//
//	artifacts, err := render.RenderAll(res, []string{"svg", "pdf"}, render.Options{Columns: 4})
//	os.WriteFile("shelf.svg", artifacts["svg"], 0o644)
//
// Only results with status ok can be drawn; a halted result renders as JSON
// only.
//
// # Clusters
//
// [ClustersDOT] writes the grouping links between items as a Graphviz
// digraph, and [ClustersSVG] lays it out with Graphviz. They are debugging
// aids for the expansion and series grouping.
package render

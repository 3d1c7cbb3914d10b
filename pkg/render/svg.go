package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/kallax/pkg/core/dims"
	"github.com/matzehuels/kallax/pkg/core/pack"
)

const (
	pxPerInch   = 20.0
	boardInches = 0.6 // Kallax panel thickness
	svgMargin   = 20.0
	svgTitleH   = 36.0
	svgLineH    = 16.0
	fontFamily  = "Helvetica, Arial, sans-serif"
)

// shelfGeometry places cubes on a grid of Columns cells.
type shelfGeometry struct {
	cols, rows int
	scale      float64 // units per inch
	originX    float64
	originY    float64
}

func newShelfGeometry(n, columns int, scale, originX, originY float64) shelfGeometry {
	cols := max(min(columns, n), 1)
	rows := max((n+cols-1)/cols, 1)
	return shelfGeometry{cols: cols, rows: rows, scale: scale, originX: originX, originY: originY}
}

func (g shelfGeometry) width() float64 {
	return (float64(g.cols)*(dims.CubeWidth+boardInches) + boardInches) * g.scale
}

func (g shelfGeometry) height() float64 {
	return (float64(g.rows)*(dims.CubeHeight+boardInches) + boardInches) * g.scale
}

// cell returns the top-left corner of cube i's opening.
func (g shelfGeometry) cell(i int) (x, y float64) {
	col, row := i%g.cols, i/g.cols
	x = g.originX + (boardInches+float64(col)*(dims.CubeWidth+boardInches))*g.scale
	y = g.originY + (boardInches+float64(row)*(dims.CubeHeight+boardInches))*g.scale
	return x, y
}

// box returns the drawn rectangle of p inside the opening at (x0, y0).
// Placement offsets are measured from the lower-left corner.
func (g shelfGeometry) box(p pack.Placement, x0, y0 float64) (x, y, w, h float64) {
	w = p.Oriented.X * g.scale
	h = math.Min(p.Oriented.Y, dims.CubeHeight) * g.scale
	x = x0 + p.OffsetX*g.scale
	y = y0 + (dims.CubeHeight-p.OffsetY)*g.scale - h
	return x, y, w, h
}

// SVG draws the shelf front-on: wood frame, one cell per cube, each box as a
// coloured rectangle labelled with its name.
func SVG(res *pack.Result, opts Options) []byte {
	opts = opts.withDefaults()
	geo := newShelfGeometry(len(res.Cubes), opts.Columns, pxPerInch, svgMargin, svgTitleH+svgMargin)

	footer := 1 + len(res.OversizedGames)
	width := geo.width() + 2*svgMargin
	height := svgTitleH + geo.height() + 2*svgMargin + float64(footer)*svgLineH

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")
	fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="20" font-weight="bold">%s</text>`+"\n",
		svgMargin, svgMargin+8, fontFamily, escapeXML(opts.Title))

	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#6d5435" stroke-width="2"/>`+"\n",
		geo.originX, geo.originY, geo.width(), geo.height(), woodColor.hex())

	for i, c := range res.Cubes {
		renderCubeSVG(&buf, geo, i, c)
	}

	y := geo.originY + geo.height() + svgMargin
	fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="12">%s</text>`+"\n",
		svgMargin, y, fontFamily, escapeXML(summaryLine(res.Stats)))
	for _, o := range res.OversizedGames {
		y += svgLineH
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="12" fill="%s">%s</text>`+"\n",
			svgMargin, y, fontFamily, oversizedColor.hex(),
			escapeXML(fmt.Sprintf("Does not fit: %s (%s)", o.DisplayName(), sizeLabel(o.Resolved))))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCubeSVG(buf *bytes.Buffer, geo shelfGeometry, i int, c *pack.Cube) {
	x0, y0 := geo.cell(i)
	side := dims.CubeWidth * geo.scale
	fmt.Fprintf(buf, `  <g id="cube-%d">`+"\n", c.ID)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#f7f3ee"/>`+"\n", x0, y0, side, side)

	for j, p := range c.Placements {
		x, y, w, h := geo.box(p, x0, y0)
		fill := colorFor(j, p.ClusterID)
		stroke := "#333333"
		if p.TreatedAsOversized {
			stroke = oversizedColor.hex()
		}
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1">`,
			x, y, w, h, fill.hex(), stroke)
		fmt.Fprintf(buf, `<title>%s</title></rect>`+"\n", escapeXML(p.DisplayName()+" - "+sizeLabel(p.Resolved)))
		renderBoxLabel(buf, p.Name, x, y, w, h)
	}

	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="%s" font-size="10" fill="#6d5435">#%d  %.0f%%</text>`+"\n",
		x0+2, y0+10, fontFamily, c.ID, c.Utilization())
	buf.WriteString("  </g>\n")
}

// renderBoxLabel writes name along the longer side of the box, shortened to
// what fits.
func renderBoxLabel(buf *bytes.Buffer, name string, x, y, w, h float64) {
	long, short := w, h
	rotated := h > w
	if rotated {
		long, short = h, w
	}
	size := math.Min(short*0.6, 11)
	if size < 4 {
		return
	}
	label := truncate(name, int(long/(size*0.6)))
	cx, cy := x+w/2, y+h/2
	transform := ""
	if rotated {
		transform = fmt.Sprintf(` transform="rotate(-90 %.1f %.1f)"`, cx, cy)
	}
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" text-anchor="middle" dominant-baseline="middle"%s>%s</text>`+"\n",
		cx, cy, fontFamily, size, transform, escapeXML(label))
}

func truncate(s string, maxChars int) string {
	r := []rune(s)
	if maxChars < 4 {
		maxChars = 4
	}
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars-3]) + "..."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func sizeLabel(r dims.Resolved) string {
	return fmt.Sprintf(`%.1f x %.1f x %.1f in (%s)`, r.Length, r.Width, r.Depth, r.Source)
}

func summaryLine(s pack.Stats) string {
	line := fmt.Sprintf("%d games in %d cubes, %.1f%% full", s.TotalGames, s.TotalCubes, s.TotalUtilization)
	if s.OversizedCount > 0 {
		line += fmt.Sprintf(", %d oversized", s.OversizedCount)
	}
	return line
}

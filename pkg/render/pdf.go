package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/kallax/pkg/core/dims"
	"github.com/matzehuels/kallax/pkg/core/pack"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - 2*marginLeft
	headerHeight = 10.0
)

// PDF writes a shelf overview with the summary, then one page per cube with
// a drawing of the cube and its packing list.
func PDF(res *pack.Result, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetAutoPageBreak(true, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	renderOverviewPage(pdf, tr, res, opts)

	for _, c := range res.Cubes {
		pdf.AddPage()
		renderCubePage(pdf, tr, c)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderOverviewPage(pdf *fpdf.Fpdf, tr func(string) string, res *pack.Result, opts Options) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, headerHeight, tr(opts.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 6, tr(summaryLine(res.Stats)), "", 1, "L", false, 0, "")

	// Shelf drawing scaled to the page width, capped at half the page.
	unit := newShelfGeometry(len(res.Cubes), opts.Columns, 1, 0, 0)
	scale := math.Min(contentWidth/unit.width(), (pageHeight/2)/unit.height())
	top := pdf.GetY() + 4
	geo := newShelfGeometry(len(res.Cubes), opts.Columns, scale, marginLeft, top)

	setFill(pdf, woodColor)
	pdf.SetDrawColor(109, 84, 53)
	pdf.SetLineWidth(0.4)
	pdf.Rect(geo.originX, geo.originY, geo.width(), geo.height(), "FD")
	for i, c := range res.Cubes {
		x0, y0 := geo.cell(i)
		drawCube(pdf, geo, c, x0, y0, nil)
	}

	y := top + geo.height() + 8
	renderStatsTable(pdf, tr, res.Stats, y)

	if len(res.OversizedGames) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(oversizedColor.R, oversizedColor.G, oversizedColor.B)
		pdf.SetX(marginLeft)
		pdf.CellFormat(contentWidth, 7, "Does not fit any cube", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 9)
		for _, o := range res.OversizedGames {
			pdf.SetX(marginLeft + 5)
			pdf.CellFormat(contentWidth-5, 5, tr("- "+o.DisplayName()+": "+sizeLabel(o.Resolved)), "", 1, "L", false, 0, "")
		}
	}
}

func renderStatsTable(pdf *fpdf.Fpdf, tr func(string) string, s pack.Stats, y float64) {
	rows := []struct{ label, value string }{
		{"Games placed", fmt.Sprintf("%d", s.TotalGames)},
		{"Cubes used", fmt.Sprintf("%d", s.TotalCubes)},
		{"Games per cube", fmt.Sprintf("%.2f", s.AvgGamesPerCube)},
		{"Average fill", fmt.Sprintf("%.1f%%", s.TotalUtilization)},
		{"Oversized", fmt.Sprintf("%d", s.OversizedCount)},
		{"Squeezed in", fmt.Sprintf("%d", s.TreatedAsOversizedCount)},
		{"Excluded", fmt.Sprintf("%d", s.ExcludedCount)},
	}
	pdf.SetY(y)
	for _, r := range rows {
		pdf.SetX(marginLeft)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(50, 6, tr(r.label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, r.value, "", 1, "L", false, 0, "")
	}
}

func renderCubePage(pdf *fpdf.Fpdf, tr func(string) string, c *pack.Cube) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cube %d: %d games, %.1f\" of %.0f\" used (%.0f%%)",
		c.ID, len(c.Placements), c.CrossUsed, dims.CubeWidth, c.Utilization())
	pdf.CellFormat(contentWidth, headerHeight, title, "", 1, "L", false, 0, "")

	// 13" drawn as 100 mm, centred.
	const side = 100.0
	scale := side / dims.CubeWidth
	geo := shelfGeometry{cols: 1, rows: 1, scale: scale}
	x0 := marginLeft + (contentWidth-side)/2
	y0 := marginTop + headerHeight + 4

	setFill(pdf, woodColor)
	pdf.SetDrawColor(109, 84, 53)
	pdf.SetLineWidth(0.6)
	pdf.Rect(x0-2, y0-2, side+4, side+4, "FD")
	drawCube(pdf, geo, c, x0, y0, tr)

	renderPackingList(pdf, tr, c, y0+side+10)
}

// drawCube paints the opening and its boxes. With a non-nil tr, box names
// are written inside the boxes when they fit.
func drawCube(pdf *fpdf.Fpdf, geo shelfGeometry, c *pack.Cube, x0, y0 float64, tr func(string) string) {
	side := dims.CubeWidth * geo.scale
	pdf.SetFillColor(247, 243, 238)
	pdf.Rect(x0, y0, side, side, "F")

	for j, p := range c.Placements {
		x, y, w, h := geo.box(p, x0, y0)
		setFill(pdf, colorFor(j, p.ClusterID))
		if p.TreatedAsOversized {
			pdf.SetDrawColor(oversizedColor.R, oversizedColor.G, oversizedColor.B)
		} else {
			pdf.SetDrawColor(30, 30, 30)
		}
		pdf.SetLineWidth(0.2)
		pdf.Rect(x, y, w, h, "FD")
		if tr != nil {
			drawBoxLabel(pdf, tr, p.Name, x, y, w, h)
		}
	}
}

func drawBoxLabel(pdf *fpdf.Fpdf, tr func(string) string, name string, x, y, w, h float64) {
	long, short := w, h
	rotated := h > w
	if rotated {
		long, short = h, w
	}
	// Points to mm is 0.3528; keep the text inside the short side.
	size := math.Min(short/0.3528*0.6, 9)
	if size < 4 {
		return
	}
	pdf.SetFont("Helvetica", "", size)
	pdf.SetTextColor(0, 0, 0)
	label := tr(name)
	for n := len([]rune(name)); n > 4 && pdf.GetStringWidth(label) > long-2; n-- {
		label = tr(truncate(name, n-1))
	}
	tw := pdf.GetStringWidth(label)
	cx, cy := x+w/2, y+h/2
	if rotated {
		pdf.TransformBegin()
		pdf.TransformRotate(90, cx, cy)
	}
	pdf.Text(cx-tw/2, cy+size*0.3528/3, label)
	if rotated {
		pdf.TransformEnd()
	}
}

func renderPackingList(pdf *fpdf.Fpdf, tr func(string) string, c *pack.Cube, y float64) {
	colWidths := []float64{8, 78, 44, 22, 28}
	headers := []string{"#", "Game", "Size (in)", "Source", "Notes"}

	pdf.SetY(y)
	pdf.SetX(marginLeft)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i, p := range c.Placements {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		var notes string
		switch {
		case p.TreatedAsOversized:
			notes = "squeezed in"
		case p.Rotated:
			notes = "rotated"
		}
		cells := []string{
			fmt.Sprintf("%d", i+1),
			tr(truncate(p.DisplayName(), 48)),
			fmt.Sprintf("%.1f x %.1f x %.1f", p.Resolved.Length, p.Resolved.Width, p.Resolved.Depth),
			p.Resolved.Source.String(),
			notes,
		}
		pdf.SetX(marginLeft)
		for j, cell := range cells {
			align := "L"
			if j != 1 {
				align = "C"
			}
			pdf.CellFormat(colWidths[j], 5, cell, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func setFill(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetFillColor(c.R, c.G, c.B)
}

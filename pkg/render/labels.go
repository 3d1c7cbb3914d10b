package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/kallax/pkg/core/pack"
)

// LabelInfo is the payload encoded in a shelf label's QR code.
type LabelInfo struct {
	Cube  int      `json:"cube"`
	Games []string `json:"games"`
}

// Label sheet layout: 2 columns x 5 rows of 95 x 54 mm on A4.
const (
	labelMarginTop  = 13.5
	labelMarginLeft = 10.0
	labelWidth      = 95.0
	labelHeight     = 54.0
	labelCols       = 2
	labelRows       = 5
	labelsPerPage   = labelCols * labelRows
	qrSize          = 34.0
	labelPadding    = 3.0
	labelMaxLines   = 8
)

// CollectLabelInfos extracts one label per cube.
func CollectLabelInfos(res *pack.Result) []LabelInfo {
	labels := make([]LabelInfo, 0, len(res.Cubes))
	for _, c := range res.Cubes {
		info := LabelInfo{Cube: c.ID}
		for _, p := range c.Placements {
			info.Games = append(info.Games, p.DisplayName())
		}
		labels = append(labels, info)
	}
	return labels
}

// Labels writes printable shelf labels, one per cube. Each label lists the
// cube's games and carries a QR code with the same list as JSON.
func Labels(res *pack.Result) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, info := range CollectLabelInfos(res) {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight
		if err := renderLabel(pdf, tr, x, y, info); err != nil {
			return nil, fmt.Errorf("label for cube %d: %w", info.Cube, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write labels: %w", err)
	}
	return buf.Bytes(), nil
}

func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	payload, err := json.Marshal(info)
	if err != nil {
		return err
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}
	name := fmt.Sprintf("qr_cube_%d", info.Cube)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 8, fmt.Sprintf("Cube %d", info.Cube), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	lines := info.Games
	if len(lines) > labelMaxLines {
		more := len(lines) - labelMaxLines + 1
		lines = append(lines[:labelMaxLines-1:labelMaxLines-1], fmt.Sprintf("and %d more", more))
	}
	for i, g := range lines {
		pdf.SetXY(textX, y+labelPadding+10+float64(i)*4.5)
		label := tr(g)
		for n := len([]rune(g)); n > 4 && pdf.GetStringWidth(label) > textW; n-- {
			label = tr(truncate(g, n-1))
		}
		pdf.CellFormat(textW, 4, label, "", 0, "L", false, 0, "")
	}
	return nil
}

package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/kallax/pkg/core/pack"
)

// Sheet names of the packing list workbook.
const (
	SheetCubes     = "Cubes"
	SheetOversized = "Oversized"
	SheetSummary   = "Summary"
)

var (
	cubeHeader = []any{"Cube", "Position", "Game", "Version", "Game ID", "Version ID",
		"Length", "Width", "Depth", "Source", "Rotated", "Squeezed", "Cluster"}
	oversizedHeader = []any{"Game", "Version", "Game ID", "Version ID", "Length", "Width", "Depth", "Source"}
)

// XLSX writes a packing list workbook: every placed game by cube, the games
// that did not fit, and the summary figures.
func XLSX(res *pack.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCubes); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetOversized, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	rows := [][]any{cubeHeader}
	for _, c := range res.Cubes {
		for i, p := range c.Placements {
			rows = append(rows, []any{
				c.ID, i + 1, p.Name, p.VersionName, p.GameID, p.VersionID,
				p.Resolved.Length, p.Resolved.Width, p.Resolved.Depth, p.Resolved.Source.String(),
				yesNo(p.Rotated), yesNo(p.TreatedAsOversized), p.ClusterID,
			})
		}
	}
	if err := writeRows(f, SheetCubes, rows, bold); err != nil {
		return nil, err
	}

	rows = [][]any{oversizedHeader}
	for _, o := range res.OversizedGames {
		rows = append(rows, []any{
			o.Name, o.VersionName, o.GameID, o.VersionID,
			o.Resolved.Length, o.Resolved.Width, o.Resolved.Depth, o.Resolved.Source.String(),
		})
	}
	if err := writeRows(f, SheetOversized, rows, bold); err != nil {
		return nil, err
	}

	s := res.Stats
	rows = [][]any{
		{"Metric", "Value"},
		{"Games placed", s.TotalGames},
		{"Cubes used", s.TotalCubes},
		{"Games per cube", s.AvgGamesPerCube},
		{"Average fill (%)", s.TotalUtilization},
		{"Oversized", s.OversizedCount},
		{"Squeezed in", s.TreatedAsOversizedCount},
		{"Excluded", s.ExcludedCount},
	}
	if err := writeRows(f, SheetSummary, rows, bold); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRows writes rows from A1 down and bolds the first one.
func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", end, headerStyle)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

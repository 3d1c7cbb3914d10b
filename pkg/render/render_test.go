package render

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/kallax/pkg/core/game"
	"github.com/matzehuels/kallax/pkg/core/group"
	"github.com/matzehuels/kallax/pkg/core/pack"
	kerrors "github.com/matzehuels/kallax/pkg/errors"
)

func box(id int, name string, l, w, d float64) game.Item {
	return game.Item{
		GameID:    id,
		VersionID: id * 10,
		Name:      name,
		Dimensions: []game.DimensionRecord{
			{Kind: game.KindVersion, Length: l, Width: w, Depth: d},
		},
	}
}

func sampleResult(t *testing.T) *pack.Result {
	t.Helper()
	items := []game.Item{
		box(1, "Azul", 11.7, 11.7, 2.9),
		box(2, "Brass & Birmingham", 12, 12, 4),
		box(3, "Carcassonne", 11.5, 11.5, 3.5),
		box(4, "Dune", 12, 12, 3),
		box(5, "Gloomhaven", 16, 12, 7.5),
		box(6, "Crokinole", 26, 26, 2),
	}
	cfg := pack.DefaultConfig()
	cfg.RespectSortOrder = true
	res, err := pack.Pack(items, cfg, pack.Options{})
	require.NoError(t, err)
	require.False(t, res.Halted())
	return res
}

func TestValidateFormat(t *testing.T) {
	for _, f := range Formats {
		assert.NoError(t, ValidateFormat(f))
	}
	err := ValidateFormat("png")
	assert.True(t, kerrors.Is(err, kerrors.ErrCodeInvalidFormat))
	assert.Error(t, ValidateFormats([]string{"svg", "SVG"}))
	assert.NoError(t, ValidateFormats(nil))
}

func TestExtensionAndContentType(t *testing.T) {
	assert.Equal(t, "labels.pdf", Extension(FormatLabels))
	assert.Equal(t, "xlsx", Extension(FormatXLSX))
	assert.Equal(t, "image/svg+xml", ContentType(FormatSVG))
	assert.Equal(t, "application/pdf", ContentType(FormatLabels))
	assert.Equal(t, "application/octet-stream", ContentType("bin"))
}

func TestJSON(t *testing.T) {
	res := sampleResult(t)
	data, err := Render(res, FormatJSON, Options{})
	require.NoError(t, err)

	var back pack.Result
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, pack.StatusOK, back.Status)
	assert.Len(t, back.Cubes, len(res.Cubes))
}

func TestSVG(t *testing.T) {
	res := sampleResult(t)
	data, err := Render(res, FormatSVG, Options{Columns: 2, Title: "Game <room>"})
	require.NoError(t, err)
	svg := string(data)

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Equal(t, len(res.Cubes), strings.Count(svg, `<g id="cube-`))
	assert.Contains(t, svg, "Game &lt;room&gt;")
	assert.Contains(t, svg, "Brass &amp; Birmingham")
	assert.Contains(t, svg, "Does not fit: Crokinole")
	assert.NotContains(t, svg, "Brass & Birmingham")
}

func TestShelfGeometry(t *testing.T) {
	geo := newShelfGeometry(5, 4, 1, 0, 0)
	assert.Equal(t, 4, geo.cols)
	assert.Equal(t, 2, geo.rows)

	x, y := geo.cell(5)
	assert.InDelta(t, boardInches+13.6, x, 1e-9)
	assert.InDelta(t, boardInches+13.6, y, 1e-9)

	geo = newShelfGeometry(0, 4, 1, 0, 0)
	assert.Equal(t, 1, geo.cols)
	assert.Equal(t, 1, geo.rows)

	// A box on the floor of the opening sits at the bottom edge.
	p := pack.Placement{}
	p.Oriented.X, p.Oriented.Y = 3, 12
	bx, by, bw, bh := newShelfGeometry(1, 1, 1, 0, 0).box(p, 0, 0)
	assert.Equal(t, 0.0, bx)
	assert.Equal(t, 1.0, by)
	assert.Equal(t, 3.0, bw)
	assert.Equal(t, 12.0, bh)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Azul", truncate("Azul", 10))
	assert.Equal(t, "Twilig...", truncate("Twilight Imperium", 9))
	assert.Equal(t, "T...", truncate("Twilight", 1))
	assert.Equal(t, "Ä...", truncate("Äöüßxyz", 4))
}

func TestPDF(t *testing.T) {
	res := sampleResult(t)
	data, err := Render(res, FormatPDF, Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestLabels(t *testing.T) {
	res := sampleResult(t)
	infos := CollectLabelInfos(res)
	require.Len(t, infos, len(res.Cubes))
	assert.Equal(t, 1, infos[0].Cube)
	assert.Equal(t, res.Cubes[0].Placements[0].DisplayName(), infos[0].Games[0])

	data, err := Render(res, FormatLabels, Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestXLSX(t *testing.T) {
	res := sampleResult(t)
	data, err := Render(res, FormatXLSX, Options{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetCubes, SheetOversized, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetCubes)
	require.NoError(t, err)
	assert.Len(t, rows, 1+res.Stats.TotalGames)
	assert.Equal(t, "Game", rows[0][2])

	rows, err = f.GetRows(SheetOversized)
	require.NoError(t, err)
	require.Len(t, rows, 1+len(res.OversizedGames))
	assert.Equal(t, "Crokinole", rows[1][0])
}

func TestRenderHalted(t *testing.T) {
	res := &pack.Result{
		Status: pack.StatusMissingVersions,
		Games:  []pack.MissingVersion{{ID: "13:0", DisplayName: "Catan"}},
	}

	_, err := Render(res, FormatSVG, Options{})
	assert.True(t, kerrors.Is(err, kerrors.ErrCodeMissingVersions))

	data, err := Render(res, FormatJSON, Options{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"missing_versions"`)
}

func TestRenderAll(t *testing.T) {
	res := sampleResult(t)
	out, err := RenderAll(res, []string{FormatJSON, FormatSVG}, Options{})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = RenderAll(res, []string{"gif"}, Options{})
	assert.Error(t, err)
}

func clusterItems() []game.Item {
	base := game.Item{GameID: 13, VersionID: 1, Name: "Catan", Families: []string{"Series: Catan"}}
	exp := game.Item{GameID: 325, VersionID: 2, Name: "Seafarers", IsExpansion: true, ExpansionOf: []int{13}}
	other := game.Item{GameID: 40, VersionID: 3, Name: "Catan Junior", Families: []string{"Series: Catan"}}
	alone := game.Item{GameID: 99, VersionID: 4, Name: "Alone"}
	return []game.Item{base, exp, other, alone}
}

func TestClustersDOT(t *testing.T) {
	dot := ClustersDOT(clusterItems(), group.Options{Expansions: true, Series: true})

	assert.True(t, strings.HasPrefix(dot, "digraph clusters {"))
	assert.Contains(t, dot, "subgraph cluster_1")
	assert.NotContains(t, dot, "cluster_2")
	assert.Contains(t, dot, `"325:2" -> "13:1";`)
	assert.Contains(t, dot, `"13:1" -> "40:3" [style=dashed, label="Catan"];`)
	assert.NotContains(t, dot, "Alone")
}

func TestClustersSVG(t *testing.T) {
	dot := ClustersDOT(clusterItems(), group.Options{Expansions: true})
	svg, err := ClustersSVG(context.Background(), dot)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

package render

import "fmt"

type rgb struct{ R, G, B int }

func (c rgb) hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// palette is cycled per placement. Clustered placements share the colour of
// their cluster so grouped boxes read as one block.
var palette = []rgb{
	{76, 175, 80},
	{33, 150, 243},
	{255, 152, 0},
	{156, 39, 176},
	{0, 188, 212},
	{244, 67, 54},
	{255, 235, 59},
	{121, 85, 72},
}

var (
	woodColor      = rgb{222, 196, 160}
	oversizedColor = rgb{200, 60, 60}
)

func colorFor(index, cluster int) rgb {
	if cluster > 0 {
		return palette[(cluster-1)%len(palette)]
	}
	return palette[index%len(palette)]
}

package pack

import "math"

// Stats summarizes a packing.
type Stats struct {
	TotalGames       int     `json:"totalGames"`
	TotalCubes       int     `json:"totalCubes"`
	AvgGamesPerCube  float64 `json:"avgGamesPerCube"`
	TotalUtilization float64 `json:"totalUtilization"`

	OversizedCount          int            `json:"oversizedCount"`
	TreatedAsOversizedCount int            `json:"treatedAsOversizedCount"`
	ExcludedCount           int            `json:"excludedCount"`
	DimensionSources        map[string]int `json:"dimensionSources,omitempty"`
}

// computeStats derives the summary from the finished cubes. Utilization is
// the mean of each cube's CrossUsed share of the opening, in percent,
// rounded to one decimal.
func computeStats(cubes []*Cube, oversized []Oversized, excluded int) Stats {
	s := Stats{
		TotalCubes:     len(cubes),
		OversizedCount: len(oversized),
		ExcludedCount:  excluded,
	}
	sources := make(map[string]int)
	util := 0.0
	for _, c := range cubes {
		s.TotalGames += len(c.Placements)
		util += c.Utilization()
		for _, p := range c.Placements {
			sources[p.Resolved.Source.String()]++
			if p.TreatedAsOversized {
				s.TreatedAsOversizedCount++
			}
		}
	}
	for _, o := range oversized {
		sources[o.Resolved.Source.String()]++
	}
	if len(sources) > 0 {
		s.DimensionSources = sources
	}
	if s.TotalCubes > 0 {
		s.AvgGamesPerCube = float64(s.TotalGames) / float64(s.TotalCubes)
		s.TotalUtilization = math.Round(util/float64(s.TotalCubes)*10) / 10
	}
	return s
}

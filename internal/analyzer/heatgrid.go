package analyzer

import (
	"math"
	"sort"

	"github.com/penwyp/go-path-tracer/internal/core/model"
)

// Bounds is the integer extent of every sample on the X/Y plane.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns the X extent in world units.
func (b Bounds) Width() int { return b.MaxX - b.MinX }

// Height returns the Y extent in world units.
func (b Bounds) Height() int { return b.MaxY - b.MinY }

// Percentiles are the colour ramp break points, taken over non-empty tiles.
type Percentiles struct {
	P20, P40, P60, P80 float64
}

// HeatGrid counts samples per square tile of Grain world units.
// Counts is indexed [row][column], row 0 holding the smallest Y.
type HeatGrid struct {
	Grain       int
	Border      int
	Bounds      Bounds
	Counts      [][]int
	Max         int
	SecondBest  int
	Percentiles Percentiles
	Samples     int
}

// Rows returns the number of tile rows.
func (g *HeatGrid) Rows() int { return len(g.Counts) }

// Columns returns the number of tile columns.
func (g *HeatGrid) Columns() int {
	if len(g.Counts) == 0 {
		return 0
	}
	return len(g.Counts[0])
}

// BuildHeatGrid bins samples into tiles. Coordinates are truncated to
// integers first. The grid always has at least one tile; positions past the
// last row or column land in it.
func BuildHeatGrid(samples []model.Sample, grain, border int) (*HeatGrid, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if grain <= 0 {
		return nil, ErrInvalidGrain
	}
	if border < 0 {
		return nil, ErrInvalidBorder
	}

	g := &HeatGrid{
		Grain:   grain,
		Border:  border,
		Bounds:  boundsOf(samples),
		Samples: len(samples),
	}

	cols := max(1, g.Bounds.Width()/grain)
	rows := max(1, g.Bounds.Height()/grain)
	g.Counts = make([][]int, rows)
	for y := range g.Counts {
		g.Counts[y] = make([]int, cols)
	}

	for _, s := range samples {
		x := (int(s.Position.X) - g.Bounds.MinX + border) / grain
		y := (int(s.Position.Y) - g.Bounds.MinY + border) / grain
		g.Counts[min(y, rows-1)][min(x, cols-1)]++
	}

	g.Max, g.SecondBest = topCounts(g.Counts)
	g.Percentiles = tilePercentiles(g.Counts)
	return g, nil
}

func boundsOf(samples []model.Sample) Bounds {
	first := samples[0].Position
	b := Bounds{
		MinX: int(first.X), MaxX: int(first.X),
		MinY: int(first.Y), MaxY: int(first.Y),
	}
	for _, s := range samples[1:] {
		x, y := int(s.Position.X), int(s.Position.Y)
		b.MinX = min(b.MinX, x)
		b.MaxX = max(b.MaxX, x)
		b.MinY = min(b.MinY, y)
		b.MaxY = max(b.MaxY, y)
	}
	return b
}

// topCounts returns the highest tile count and the runner-up. A tie for the
// highest makes both values equal.
func topCounts(counts [][]int) (best, second int) {
	for _, row := range counts {
		for _, n := range row {
			if n >= best {
				second = best
				best = n
			} else if n > second {
				second = n
			}
		}
	}
	return best, second
}

func tilePercentiles(counts [][]int) Percentiles {
	var values []float64
	for _, row := range counts {
		for _, n := range row {
			if n != 0 {
				values = append(values, float64(n))
			}
		}
	}
	sort.Float64s(values)
	return Percentiles{
		P20: percentile(values, 20),
		P40: percentile(values, 40),
		P60: percentile(values, 60),
		P80: percentile(values, 80),
	}
}

// percentile interpolates linearly between the two closest ranks of sorted.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// HeatValues are the normalised intensities exported per tile, each in [0, 255].
type HeatValues struct {
	Linear     float64
	SquareRoot float64
	Logarithm  float64
	NLogN      float64
}

// Heat normalises a tile count against the grid maximum.
func (g *HeatGrid) Heat(count int) HeatValues {
	if count <= 0 || g.Max <= 0 {
		return HeatValues{}
	}
	ratio := float64(count) / float64(g.Max)
	h := HeatValues{
		Linear:     ratio * 255,
		SquareRoot: math.Sqrt(ratio) * 255,
	}
	if g.Max == 1 {
		// log(1) is zero; a lone sample is as hot as it gets.
		h.Logarithm, h.NLogN = 255, 255
		return h
	}
	n, m := float64(count), float64(g.Max)
	h.Logarithm = math.Log(n) / math.Log(m) * 255
	h.NLogN = n * math.Log(n) / (m * math.Log(m)) * 255
	return h
}

// TileColor returns the colour of the tile at column x, row y, ramped on the
// grid percentiles. Empty tiles are black.
func (g *HeatGrid) TileColor(x, y int) model.Color {
	count := g.Counts[min(y, g.Rows()-1)][min(x, g.Columns()-1)]
	if count == 0 {
		return model.Color{}
	}
	p := g.Percentiles
	return HeatColor(float64(count), p.P20, p.P40, p.P60, p.P80)
}

// HeatColor maps heat onto a blue, cyan, yellow, red ramp. The four break
// points are where the colour becomes fully blue, cyan, yellow and red.
func HeatColor(heat, p1, p2, p3, p4 float64) model.Color {
	switch {
	case heat <= p1:
		return model.Color{B: channel(heat / p1)}
	case heat <= p2:
		return model.Color{G: channel((heat - p1) / (p2 - p1)), B: 255}
	case heat <= p3:
		t := (heat - p2) / (p3 - p2)
		return model.Color{R: channel(t), G: 255, B: channel(1 - t)}
	case heat <= p4:
		return model.Color{R: 255, G: channel(1 - (heat-p3)/(p4-p3))}
	default:
		return model.ColorRed
	}
}

func channel(t float64) uint8 {
	if math.IsNaN(t) || t <= 0 {
		return 0
	}
	if t >= 1 {
		return 255
	}
	return uint8(t * 255)
}

package analyzer

import (
	"testing"

	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(x, y float64) model.Sample {
	return model.Sample{Position: model.Vector3{X: x, Y: y}}
}

func TestBuildHeatGrid(t *testing.T) {
	samples := []model.Sample{
		at(0, 0), at(10, 10), at(120, 5),
		at(260, 0), at(499.9, 499.9), at(500, 500),
		at(-0.5, 20),
	}

	grid, err := BuildHeatGrid(samples, 250, 0)
	require.NoError(t, err)

	assert.Equal(t, Bounds{MinX: 0, MinY: 0, MaxX: 500, MaxY: 500}, grid.Bounds)
	assert.Equal(t, 2, grid.Columns())
	assert.Equal(t, 2, grid.Rows())
	// 500 lands past the last column and is clamped into it.
	assert.Equal(t, [][]int{{4, 1}, {0, 2}}, grid.Counts)
	assert.Equal(t, 4, grid.Max)
	assert.Equal(t, 2, grid.SecondBest)
	assert.Equal(t, 7, grid.Samples)
}

func TestBuildHeatGridSingleTile(t *testing.T) {
	grid, err := BuildHeatGrid([]model.Sample{at(-30, 7), at(-10, 9)}, 250, 10)
	require.NoError(t, err)

	assert.Equal(t, Bounds{MinX: -30, MinY: 7, MaxX: -10, MaxY: 9}, grid.Bounds)
	assert.Equal(t, [][]int{{2}}, grid.Counts)
	assert.Equal(t, 2, grid.Max)
	assert.Equal(t, 0, grid.SecondBest)
}

func TestBuildHeatGridErrors(t *testing.T) {
	_, err := BuildHeatGrid(nil, 250, 0)
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = BuildHeatGrid([]model.Sample{at(0, 0)}, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidGrain)

	_, err = BuildHeatGrid([]model.Sample{at(0, 0)}, 10, -1)
	assert.ErrorIs(t, err, ErrInvalidBorder)
}

func TestTopCounts(t *testing.T) {
	tests := []struct {
		name   string
		counts [][]int
		best   int
		second int
	}{
		{"ascending", [][]int{{1, 2, 3}}, 3, 2},
		{"descending", [][]int{{3, 2, 1}}, 3, 2},
		{"tie", [][]int{{5}, {5}}, 5, 5},
		{"empty tiles", [][]int{{0, 0}}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, second := topCounts(tt.counts)
			assert.Equal(t, tt.best, best)
			assert.Equal(t, tt.second, second)
		})
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1.8, percentile(values, 20), 1e-9)
	assert.InDelta(t, 2.6, percentile(values, 40), 1e-9)
	assert.InDelta(t, 3.4, percentile(values, 60), 1e-9)
	assert.InDelta(t, 4.2, percentile(values, 80), 1e-9)
	assert.Equal(t, 5.0, percentile(values, 100))
	assert.Equal(t, 7.0, percentile([]float64{7}, 40))
	assert.Zero(t, percentile(nil, 50))
}

func TestTilePercentilesIgnoreEmptyTiles(t *testing.T) {
	p := tilePercentiles([][]int{{0, 5, 0}, {1, 0, 3}})
	assert.InDelta(t, 1.8, p.P20, 1e-9)
	assert.InDelta(t, 4.2, p.P80, 1e-9)
}

func TestHeatColor(t *testing.T) {
	tests := []struct {
		heat float64
		want model.Color
	}{
		{0, model.Color{}},
		{10, model.Color{B: 255}},
		{5, model.Color{B: 127}},
		{15, model.Color{G: 127, B: 255}},
		{20, model.Color{G: 255, B: 255}},
		{25, model.Color{R: 127, G: 255, B: 127}},
		{35, model.Color{R: 255, G: 127}},
		{40, model.Color{R: 255}},
		{100, model.Color{R: 255}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HeatColor(tt.heat, 10, 20, 30, 40), "heat %v", tt.heat)
	}
}

func TestTileColor(t *testing.T) {
	grid := &HeatGrid{
		Counts:      [][]int{{0, 1}, {4, 9}},
		Percentiles: Percentiles{P20: 1, P40: 2, P60: 3, P80: 4},
	}

	assert.Equal(t, model.Color{}, grid.TileColor(0, 0))
	assert.Equal(t, model.Color{B: 255}, grid.TileColor(1, 0))
	assert.Equal(t, model.Color{R: 255}, grid.TileColor(0, 1))
	assert.Equal(t, model.Color{R: 255}, grid.TileColor(5, 5), "clamped to last tile")
}

func TestHeat(t *testing.T) {
	grid := &HeatGrid{Max: 4}

	h := grid.Heat(4)
	assert.InDelta(t, 255, h.Linear, 1e-9)
	assert.InDelta(t, 255, h.SquareRoot, 1e-9)
	assert.InDelta(t, 255, h.Logarithm, 1e-9)
	assert.InDelta(t, 255, h.NLogN, 1e-9)

	h = grid.Heat(1)
	assert.InDelta(t, 63.75, h.Linear, 1e-9)
	assert.InDelta(t, 127.5, h.SquareRoot, 1e-9)
	assert.Zero(t, h.Logarithm)
	assert.Zero(t, h.NLogN)

	h = grid.Heat(2)
	assert.InDelta(t, 127.5, h.Logarithm, 1e-9)
	assert.InDelta(t, 63.75, h.NLogN, 1e-9)

	assert.Equal(t, HeatValues{}, grid.Heat(0))

	single := &HeatGrid{Max: 1}
	assert.Equal(t, HeatValues{Linear: 255, SquareRoot: 255, Logarithm: 255, NLogN: 255}, single.Heat(1))
}

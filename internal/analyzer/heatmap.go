package analyzer

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/penwyp/go-path-tracer/internal/core/model"
)

const (
	// MaxHeat is the hottest a heat map pixel gets.
	MaxHeat = 255

	// MaxHeatMapPixels bounds the heat map, one pixel per world unit.
	MaxHeatMapPixels = 1 << 26
)

// Heat map colour ramp break points.
const (
	heatMapBlue   = 51
	heatMapCyan   = 102
	heatMapYellow = 153
	heatMapRed    = 204
)

// HeatMap holds one heat value per world unit of the sampled area. Every
// sample warms the pixels within Radius of it, linearly less with distance.
// Heat is indexed [y][x], row 0 holding the smallest Y, and does not include
// the border.
type HeatMap struct {
	Radius int
	Border int
	Bounds Bounds
	Weight float64
	Heat   [][]float32
}

// HeatMapWeight is the heat one sample adds at its own position: a tenth of
// the ramp, scaled by how close the runner-up tile comes to the hottest one.
func (g *HeatGrid) HeatMapWeight() float64 {
	if g.Max <= 0 {
		return 0
	}
	return 25.5 * float64(g.SecondBest) / float64(g.Max)
}

// Width returns the heat map width in pixels, border included.
func (m *HeatMap) Width() int { return m.columns() + 2*m.Border }

// Height returns the heat map height in pixels, border included.
func (m *HeatMap) Height() int { return len(m.Heat) + 2*m.Border }

func (m *HeatMap) columns() int {
	if len(m.Heat) == 0 {
		return 0
	}
	return len(m.Heat[0])
}

// BuildHeatMap spreads weight around every sample over a disc of radius
// pixels. A pixel gains weight*(1-d/radius) per sample at distance d and
// saturates at MaxHeat. Sample positions are shifted by border like the heat
// grid tiles, the area is the true extent of the samples, at least one pixel.
func BuildHeatMap(samples []model.Sample, radius, border int, weight float64) (*HeatMap, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if radius <= 0 {
		return nil, ErrInvalidRadius
	}
	if border < 0 {
		return nil, ErrInvalidBorder
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return nil, ErrInvalidWeight
	}

	bounds := boundsOf(samples)
	cols := max(1, bounds.Width())
	rows := max(1, bounds.Height())
	if (cols+2*border)*(rows+2*border) > MaxHeatMapPixels {
		return nil, ErrHeatMapTooLarge
	}

	m := &HeatMap{
		Radius: radius,
		Border: border,
		Bounds: bounds,
		Weight: weight,
		Heat:   make([][]float32, rows),
	}
	for y := range m.Heat {
		m.Heat[y] = make([]float32, cols)
	}

	r := float64(radius)
	for _, s := range samples {
		cx := int(s.Position.X) - bounds.MinX + border
		cy := int(s.Position.Y) - bounds.MinY + border
		for y := max(0, cy-radius); y < min(rows, cy+radius+1); y++ {
			row := m.Heat[y]
			for x := max(0, cx-radius); x < min(cols, cx+radius+1); x++ {
				if row[x] >= MaxHeat {
					continue
				}
				d := math.Hypot(float64(cx-x), float64(cy-y))
				if d > r {
					continue
				}
				row[x] = float32(min(MaxHeat, float64(row[x])+weight*(1-d/r)))
			}
		}
	}
	return m, nil
}

// PixelColor returns the colour of the interior pixel x, y on the fixed
// heat map ramp. Zero heat is black.
func (m *HeatMap) PixelColor(x, y int) model.Color {
	heat := math.Trunc(float64(m.Heat[y][x]))
	return HeatColor(heat, heatMapBlue, heatMapCyan, heatMapYellow, heatMapRed)
}

// Image draws one pixel per world unit with a black border.
func (m *HeatMap) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.Width(), m.Height()))
	black := color.RGBA{A: 255}
	for py := 0; py < m.Height(); py++ {
		for px := 0; px < m.Width(); px++ {
			x, y := px-m.Border, py-m.Border
			if x < 0 || y < 0 || x >= m.columns() || y >= len(m.Heat) {
				img.SetRGBA(px, py, black)
				continue
			}
			c := m.PixelColor(x, y)
			img.SetRGBA(px, py, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

// WritePNG encodes Image as PNG.
func (m *HeatMap) WritePNG(w io.Writer) error {
	return png.Encode(w, m.Image())
}

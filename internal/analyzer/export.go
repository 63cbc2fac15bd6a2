package analyzer

import (
	"encoding/csv"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"
)

var heatGridHeader = []string{
	"X", "Y", "Number of Points", "Grid Grain",
	"Heat Value", "Square Root", "Logarithm", "n * log(n)",
}

// WriteCSV writes one row per tile, row by row.
func (g *HeatGrid) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(heatGridHeader); err != nil {
		return err
	}

	grain := strconv.Itoa(g.Grain)
	for y, row := range g.Counts {
		for x, count := range row {
			heat := g.Heat(count)
			record := []string{
				strconv.Itoa(x),
				strconv.Itoa(y),
				strconv.Itoa(count),
				grain,
				formatHeat(heat.Linear),
				formatHeat(heat.SquareRoot),
				formatHeat(heat.Logarithm),
				formatHeat(heat.NLogN),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatHeat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Image draws every tile as a cell x cell square. The border, scaled from
// world units to pixels, is left black.
func (g *HeatGrid) Image(cell int) (*image.RGBA, error) {
	if cell <= 0 {
		return nil, ErrInvalidCell
	}

	border := g.Border * cell / g.Grain
	width := g.Columns()*cell + 2*border
	height := g.Rows()*cell + 2*border

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	black := color.RGBA{A: 255}
	for py := 0; py < height; py++ {
		for px := 0; px < width; px++ {
			img.SetRGBA(px, py, black)
		}
	}

	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Columns(); x++ {
			c := g.TileColor(x, y)
			fill := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
			ox, oy := border+x*cell, border+y*cell
			for py := oy; py < oy+cell; py++ {
				for px := ox; px < ox+cell; px++ {
					img.SetRGBA(px, py, fill)
				}
			}
		}
	}
	return img, nil
}

// WritePNG encodes Image(cell) as PNG.
func (g *HeatGrid) WritePNG(w io.Writer, cell int) error {
	img, err := g.Image(cell)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

package pathstore

import (
	"github.com/penwyp/go-path-tracer/internal/core/constants"
	"github.com/penwyp/go-path-tracer/internal/core/model"
)

// Renderer draws debug primitives in the world.
type Renderer interface {
	DrawPoint(at model.Vector3, size float64, color model.Color)
	DrawSegment(from, to model.Vector3, color model.Color, thickness float64)
}

// Style is how replayed paths are drawn.
type Style struct {
	PointSize     float64     `json:"point_size"`
	PointColor    model.Color `json:"point_color"`
	LineColor     model.Color `json:"line_color"`
	LineThickness float64     `json:"line_thickness"`
}

// DefaultStyle draws red points joined by blue lines.
func DefaultStyle() Style {
	return Style{
		PointSize:     constants.PointSize,
		PointColor:    model.ColorRed,
		LineColor:     model.ColorBlue,
		LineThickness: constants.LineThickness,
	}
}

// Render emits one point per in-window sample and one segment per linked
// pair, in path order.
func Render(windows []Window, r Renderer, style Style) (points, segments int) {
	for _, w := range windows {
		for i, s := range w.Samples {
			r.DrawPoint(s.Position, style.PointSize, style.PointColor)
			points++
			if s.Linked && i > 0 {
				r.DrawSegment(w.Samples[i-1].Position, s.Position, style.LineColor, style.LineThickness)
				segments++
			}
		}
	}
	return points, segments
}

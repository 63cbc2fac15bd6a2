package pathstore

import "github.com/penwyp/go-path-tracer/internal/core/model"

// Path is the ordered sample sequence of one session file.
type Path struct {
	Source  string
	Samples []model.Sample

	// cursor is the index of the first sample of the previously returned
	// window. Scans start there on the assumption that query time only grows.
	cursor int

	// consumed is the number of file lines already decoded into Samples.
	consumed int
}

func newPath(source string, samples []model.Sample) *Path {
	return &Path{Source: source, Samples: samples}
}

func (p *Path) extend(samples []model.Sample) {
	p.Samples = append(p.Samples, samples...)
}

// Len returns the number of samples.
func (p *Path) Len() int { return len(p.Samples) }

// Cursor returns the index the next query starts scanning from.
func (p *Path) Cursor() int { return p.cursor }

// ResetCursor makes the next query scan from the first sample.
func (p *Path) ResetCursor() { p.cursor = 0 }

// InWindow reports whether s belongs to the replay window ending at current.
// A window of zero or less has no lower bound.
func InWindow(s model.Sample, current, window float64, name string) bool {
	if window > 0 && s.ElapsedTime < current-window {
		return false
	}
	return s.ElapsedTime <= current && s.Name == name
}

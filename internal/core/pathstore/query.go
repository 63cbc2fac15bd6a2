package pathstore

import "github.com/penwyp/go-path-tracer/internal/core/model"

// WindowSample is a sample selected by a query.
type WindowSample struct {
	model.Sample
	// Index is the position of the sample in its path.
	Index int `json:"index"`
	// Linked is true when the previous sample of the path is also in the
	// window, so a segment joins the two.
	Linked bool `json:"linked"`
}

// Window is the query result for one path.
type Window struct {
	Source  string         `json:"source"`
	Samples []WindowSample `json:"samples"`
}

// Segments returns one segment per linked sample, in path order.
func (w Window) Segments() []model.Segment {
	var segments []model.Segment
	for i := 1; i < len(w.Samples); i++ {
		if w.Samples[i].Linked {
			segments = append(segments, model.Segment{
				From: w.Samples[i-1].Position,
				To:   w.Samples[i].Position,
			})
		}
	}
	return segments
}

// Query selects, for every path, the samples of name whose elapsed time lies
// in [current-window, current]. Paths are scanned from their cursor, which
// then moves to the first in-window sample found. Querying an earlier time
// than a previous call can miss samples behind the cursor; call ResetCursors
// first when rewinding.
//
// The scan runs to the end of each path: samples of other entities may be
// interleaved with the requested one, so leaving the window is not a reason
// to stop.
func (s *Store) Query(current, window float64, name string) []Window {
	windows := make([]Window, 0, len(s.paths))
	total := 0

	for _, p := range s.paths {
		w := Window{Source: p.Source}
		previous := false
		cursorSet := false

		for i := p.cursor; i < len(p.Samples); i++ {
			sample := p.Samples[i]
			if !InWindow(sample, current, window, name) {
				previous = false
				continue
			}

			if !cursorSet {
				p.cursor = i
				cursorSet = true
			}
			w.Samples = append(w.Samples, WindowSample{
				Sample: sample,
				Index:  i,
				Linked: previous,
			})
			previous = true
		}

		total += len(w.Samples)
		windows = append(windows, w)
	}

	s.metrics.QueryReturned(total)
	return windows
}

// ResetCursors rewinds every path so the next query scans from the start.
func (s *Store) ResetCursors() {
	for _, p := range s.paths {
		p.ResetCursor()
	}
}

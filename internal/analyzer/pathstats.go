package analyzer

import (
	"path/filepath"
	"sort"

	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
)

// PathStats summarises one recorded path.
type PathStats struct {
	Source    string   `json:"source"`
	File      string   `json:"file"`
	Samples   int      `json:"samples"`
	Names     []string `json:"names"`
	FirstTime float64  `json:"first_time"`
	LastTime  float64  `json:"last_time"`
	Distance  float64  `json:"distance"`
}

// Duration is the elapsed time covered by the path.
func (s PathStats) Duration() float64 { return s.LastTime - s.FirstTime }

// SummarizePaths returns one entry per path, in store order. Distance sums
// the gaps between consecutive samples of the same entity.
func SummarizePaths(paths []*pathstore.Path) []PathStats {
	stats := make([]PathStats, 0, len(paths))
	for _, p := range paths {
		stats = append(stats, summarizePath(p))
	}
	return stats
}

func summarizePath(p *pathstore.Path) PathStats {
	s := PathStats{
		Source:  p.Source,
		File:    filepath.Base(p.Source),
		Samples: p.Len(),
		Names:   []string{},
	}
	if p.Len() == 0 {
		return s
	}

	s.FirstTime = p.Samples[0].ElapsedTime
	s.LastTime = p.Samples[p.Len()-1].ElapsedTime

	seen := make(map[string]int)
	for i, sample := range p.Samples {
		if last, ok := seen[sample.Name]; ok {
			s.Distance += p.Samples[last].Position.DistanceTo(sample.Position)
		} else {
			s.Names = append(s.Names, sample.Name)
		}
		seen[sample.Name] = i
	}
	sort.Strings(s.Names)
	return s
}

package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-path-tracer/internal/core/constants"
	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/penwyp/go-path-tracer/internal/data/parser"
)

// SessionGenerator writes session files the way the recorder does.
type SessionGenerator struct {
	baseDir string
}

// NewSessionGenerator creates a generator writing into baseDir.
func NewSessionGenerator(baseDir string) *SessionGenerator {
	return &SessionGenerator{baseDir: baseDir}
}

// WriteSession writes a header plus one record per sample into a file named
// after startTime, and returns its path.
func (g *SessionGenerator) WriteSession(startTime time.Time, samples []model.Sample) (string, error) {
	if err := os.MkdirAll(g.baseDir, 0755); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(constants.CSVHeader)
	b.WriteByte('\n')
	for _, s := range samples {
		b.WriteString(parser.EncodeLine(s, startTime.Unix()))
		b.WriteByte('\n')
	}

	path := filepath.Join(g.baseDir, startTime.Format(constants.SessionFileLayout)+constants.FileExtension)
	return path, os.WriteFile(path, []byte(b.String()), 0644)
}

// StraightLine moves name from `from` to `to` in steps samples, interval
// seconds apart, starting at interval.
func StraightLine(name string, from, to model.Vector3, steps int, interval float64) []model.Sample {
	samples := make([]model.Sample, 0, steps)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		samples = append(samples, model.Sample{
			Position: model.Vector3{
				X: from.X + (to.X-from.X)*t,
				Y: from.Y + (to.Y-from.Y)*t,
				Z: from.Z + (to.Z-from.Z)*t,
			},
			ElapsedTime: float64(i) * interval,
			Name:        name,
		})
	}
	return samples
}

// Interleave merges per-entity sample lists in elapsed-time order, keeping
// the input order for equal times.
func Interleave(lists ...[]model.Sample) []model.Sample {
	var merged []model.Sample
	idx := make([]int, len(lists))
	for {
		best := -1
		for i, list := range lists {
			if idx[i] >= len(list) {
				continue
			}
			if best < 0 || list[idx[i]].ElapsedTime < lists[best][idx[best]].ElapsedTime {
				best = i
			}
		}
		if best < 0 {
			return merged
		}
		merged = append(merged, lists[best][idx[best]])
		idx[best]++
	}
}

package formatter

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/penwyp/go-path-tracer/internal/analyzer"
	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Formatter renders command results.
type Formatter interface {
	FormatPaths(stats []analyzer.PathStats) error
	FormatWindows(windows []pathstore.Window) error
}

// Formats lists the accepted output formats.
var Formats = []string{"table", "json", "csv"}

// New returns the formatter for format writing to w.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "", "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WindowReport is one path's query result with its derived segments.
type WindowReport struct {
	Source   string                   `json:"source"`
	Samples  []pathstore.WindowSample `json:"samples"`
	Segments []model.Segment          `json:"segments"`
}

func windowReports(windows []pathstore.Window) []WindowReport {
	reports := make([]WindowReport, 0, len(windows))
	for _, w := range windows {
		r := WindowReport{
			Source:   w.Source,
			Samples:  w.Samples,
			Segments: w.Segments(),
		}
		if r.Samples == nil {
			r.Samples = []pathstore.WindowSample{}
		}
		if r.Segments == nil {
			r.Segments = []model.Segment{}
		}
		reports = append(reports, r)
	}
	return reports
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

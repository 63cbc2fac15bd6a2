package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-path-tracer/internal/analyzer"
	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) FormatPaths(stats []analyzer.PathStats) error {
	w := csv.NewWriter(f.w)

	headers := []string{"Source", "Samples", "Names", "First Time", "Last Time", "Distance"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, s := range stats {
		record := []string{
			s.Source,
			strconv.Itoa(s.Samples),
			strings.Join(s.Names, ";"),
			formatFloat(s.FirstTime),
			formatFloat(s.LastTime),
			formatFloat(s.Distance),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (f *CSVFormatter) FormatWindows(windows []pathstore.Window) error {
	w := csv.NewWriter(f.w)

	headers := []string{"Source", "Index", "Name", "X", "Y", "Z", "Elapsed Time", "Linked"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, window := range windows {
		for _, s := range window.Samples {
			record := []string{
				window.Source,
				strconv.Itoa(s.Index),
				s.Name,
				formatFloat(s.Position.X),
				formatFloat(s.Position.Y),
				formatFloat(s.Position.Z),
				formatFloat(s.ElapsedTime),
				strconv.FormatBool(s.Linked),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

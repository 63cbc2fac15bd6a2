package formatter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-path-tracer/internal/analyzer"
	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
	"github.com/penwyp/go-path-tracer/internal/presentation/layout"
)

const minColumnWidth = 6

type TableFormatter struct {
	w     io.Writer
	sizer *layout.Sizer
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w, sizer: layout.Shared()}
}

// WithSizer measures columns with s instead of the shared terminal sizer.
func (f *TableFormatter) WithSizer(s *layout.Sizer) *TableFormatter {
	f.sizer = s
	return f
}

// table is a rendered grid. Columns flagged in leftAlign hold text; the rest
// hold numbers and are right-aligned.
type table struct {
	headers   []string
	leftAlign []bool
	rows      [][]string
	footer    []string
}

func (f *TableFormatter) FormatPaths(stats []analyzer.PathStats) error {
	t := table{
		headers:   []string{"File", "Samples", "Names", "First (s)", "Last (s)", "Distance"},
		leftAlign: []bool{true, false, true, false, false, false},
	}

	var totalSamples int
	var totalDistance float64
	for _, s := range stats {
		t.rows = append(t.rows, []string{
			s.File,
			formatNumber(s.Samples),
			strings.Join(s.Names, ", "),
			fmt.Sprintf("%.2f", s.FirstTime),
			fmt.Sprintf("%.2f", s.LastTime),
			fmt.Sprintf("%.1f", s.Distance),
		})
		totalSamples += s.Samples
		totalDistance += s.Distance
	}
	t.footer = []string{
		fmt.Sprintf("Total (%d)", len(stats)),
		formatNumber(totalSamples),
		"", "", "",
		fmt.Sprintf("%.1f", totalDistance),
	}

	return f.render(t)
}

func (f *TableFormatter) FormatWindows(windows []pathstore.Window) error {
	t := table{
		headers:   []string{"File", "#", "Name", "X", "Y", "Z", "Time (s)", "Link"},
		leftAlign: []bool{true, false, true, false, false, false, false, true},
	}

	var points, segments int
	for _, w := range windows {
		file := filepath.Base(w.Source)
		for _, s := range w.Samples {
			link := ""
			if s.Linked {
				link = "──"
				segments++
			}
			t.rows = append(t.rows, []string{
				file,
				formatNumber(s.Index),
				s.Name,
				fmt.Sprintf("%.2f", s.Position.X),
				fmt.Sprintf("%.2f", s.Position.Y),
				fmt.Sprintf("%.2f", s.Position.Z),
				fmt.Sprintf("%.2f", s.ElapsedTime),
				link,
			})
			points++
		}
	}
	t.footer = []string{
		"Total", formatNumber(points), "points", "", "", "", formatNumber(segments), "segs",
	}

	return f.render(t)
}

func (f *TableFormatter) render(t table) error {
	widths := f.calculateColumnWidths(t)

	var b strings.Builder
	f.writeBorder(&b, widths, "top")
	f.writeRow(&b, t, t.headers, widths)
	f.writeBorder(&b, widths, "middle")
	for _, row := range t.rows {
		f.writeRow(&b, t, row, widths)
	}
	if t.footer != nil {
		f.writeBorder(&b, widths, "middle")
		f.writeRow(&b, t, t.footer, widths)
	}
	f.writeBorder(&b, widths, "bottom")

	_, err := io.WriteString(f.w, b.String())
	return err
}

// calculateColumnWidths sizes every column to its widest cell, then shrinks
// the widest text column until the table fits the terminal.
func (f *TableFormatter) calculateColumnWidths(t table) []int {
	widths := make([]int, len(t.headers))
	measure := func(row []string) {
		for i, value := range row {
			if w := f.sizer.DisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}
	measure(t.footer)

	// Each column adds two padding spaces and one separator.
	total := 1
	for _, w := range widths {
		total += w + 3
	}

	for overflow := total - f.sizer.GetMaxWidth(); overflow > 0; {
		widest := -1
		for i, w := range widths {
			if t.leftAlign[i] && w > minColumnWidth && (widest < 0 || w > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		shrink := min(overflow, widths[widest]-minColumnWidth)
		widths[widest] -= shrink
		overflow -= shrink
	}

	return widths
}

func (f *TableFormatter) writeBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteByte('\n')
}

func (f *TableFormatter) writeRow(b *strings.Builder, t table, values []string, widths []int) {
	b.WriteString("│")
	for i, value := range values {
		if f.sizer.DisplayWidth(value) > widths[i] {
			value = f.sizer.Truncate(value, widths[i])
		}
		b.WriteString(" ")
		b.WriteString(f.sizer.PadString(value, widths[i], t.leftAlign[i]))
		b.WriteString(" │")
	}
	b.WriteByte('\n')
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, digit)
	}

	return string(result)
}

package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-path-tracer/internal/util"
	"golang.org/x/term"
)

const (
	fallbackWidth = 100
	minWidth      = 40
)

// Package-level singleton Sizer instance
var sharedSizer = NewSizer(0)

// Sizer measures and pads text by terminal display width.
type Sizer struct {
	// Width is the terminal width in columns, zero when unknown.
	Width int
}

// NewSizer creates a Sizer for a terminal of the given width.
func NewSizer(width int) *Sizer {
	return &Sizer{Width: width}
}

// Shared returns the process-wide Sizer.
func Shared() *Sizer { return sharedSizer }

// DisplayWidth is the number of terminal columns s occupies.
func (s *Sizer) DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads text to a display width, handling wide characters correctly.
func (s *Sizer) PadString(text string, width int, leftAlign bool) string {
	actualWidth := s.DisplayWidth(text)
	if actualWidth >= width {
		return text
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return text + padding
	}
	return padding + text
}

// Truncate shortens text to at most width columns, ending with an ellipsis.
func (s *Sizer) Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// GetMaxWidth returns the usable width for tables: the configured width, or
// the width of stdout when it is a terminal, or a fallback.
func (s *Sizer) GetMaxWidth() int {
	width := s.Width
	if width == 0 {
		width = TerminalWidth(os.Stdout)
	}
	if width < minWidth {
		width = fallbackWidth
	}

	util.LogDebugf("GetMaxWidth %d", width)
	return width
}

// TerminalWidth returns the column count of f, or zero when f is not a terminal.
func TerminalWidth(f *os.File) int {
	if !IsTerminal(f) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

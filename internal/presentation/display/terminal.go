package display

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
	"github.com/penwyp/go-path-tracer/internal/presentation/formatter"
	"github.com/penwyp/go-path-tracer/internal/presentation/layout"
)

const (
	enterAlternateScreen = "\033[?1049h"
	exitAlternateScreen  = "\033[?1049l"
	clearScreen          = "\033[2J"
	moveCursorHome       = "\033[H"
	hideCursor           = "\033[?25l"
	showCursor           = "\033[?25h"
)

// Frame is what one live replay step shows.
type Frame struct {
	Name     string
	Time     float64
	Window   float64
	Paths    int
	Windows  []pathstore.Window
	Points   int
	Segments int
}

// LiveDisplay redraws replay frames. On a terminal it repaints a full screen
// per frame in the alternate buffer; otherwise it prints one line per frame.
type LiveDisplay struct {
	w           io.Writer
	interactive bool
	sizer       *layout.Sizer
	inAlternate bool
}

func NewLiveDisplay(w io.Writer, interactive bool) *LiveDisplay {
	return &LiveDisplay{w: w, interactive: interactive, sizer: layout.Shared()}
}

// Enter switches a terminal to the alternate screen buffer.
func (d *LiveDisplay) Enter() {
	if d.interactive && !d.inAlternate {
		fmt.Fprint(d.w, enterAlternateScreen+clearScreen+moveCursorHome+hideCursor)
		d.inAlternate = true
	}
}

// Exit restores the normal screen buffer.
func (d *LiveDisplay) Exit() {
	if d.inAlternate {
		fmt.Fprint(d.w, clearScreen+moveCursorHome+showCursor+exitAlternateScreen)
		d.inAlternate = false
	}
}

// Render draws one frame.
func (d *LiveDisplay) Render(frame Frame) error {
	if !d.interactive {
		_, err := fmt.Fprintln(d.w, summaryLine(frame))
		return err
	}

	// Build the whole screen first so it is written in one go.
	var screen bytes.Buffer
	screen.WriteString(clearScreen + moveCursorHome)
	fmt.Fprintf(&screen, "Replaying %s  t=%.2fs  window=%s  paths=%d\n\n",
		frame.Name, frame.Time, windowLabel(frame.Window), frame.Paths)

	visible := make([]pathstore.Window, 0, len(frame.Windows))
	for _, w := range frame.Windows {
		if len(w.Samples) > 0 {
			visible = append(visible, w)
		}
	}
	if len(visible) == 0 {
		screen.WriteString("No samples in window\n")
	} else if err := formatter.NewTableFormatter(&screen).WithSizer(d.sizer).FormatWindows(visible); err != nil {
		return err
	}
	screen.WriteString("\nPress Ctrl+C to stop\n")

	_, err := d.w.Write(screen.Bytes())
	return err
}

func summaryLine(frame Frame) string {
	line := fmt.Sprintf("t=%.2fs points=%d segments=%d", frame.Time, frame.Points, frame.Segments)
	for _, w := range frame.Windows {
		if len(w.Samples) > 0 {
			line += fmt.Sprintf(" %s:%d", filepath.Base(w.Source), len(w.Samples))
		}
	}
	return line
}

func windowLabel(window float64) string {
	if window <= 0 {
		return "all"
	}
	return fmt.Sprintf("%.2fs", window)
}

package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-path-tracer/internal/analyzer"
	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) FormatPaths(stats []analyzer.PathStats) error {
	return f.encode(stats)
}

func (f *JSONFormatter) FormatWindows(windows []pathstore.Window) error {
	return f.encode(windowReports(windows))
}

func (f *JSONFormatter) encode(v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = f.w.Write(append(data, '\n'))
	return err
}

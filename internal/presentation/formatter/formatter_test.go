package formatter

import (
	"bytes"
	"testing"

	"github.com/penwyp/go-path-tracer/internal/analyzer"
	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStats() []analyzer.PathStats {
	return []analyzer.PathStats{
		{
			Source:    "/data/2024.05.17-09.30.15.csv",
			File:      "2024.05.17-09.30.15.csv",
			Samples:   1200,
			Names:     []string{"Alice", "Bob"},
			FirstTime: 0.01,
			LastTime:  12,
			Distance:  345.25,
		},
	}
}

func testWindows() []pathstore.Window {
	return []pathstore.Window{
		{
			Source: "/data/a.csv",
			Samples: []pathstore.WindowSample{
				{Sample: model.Sample{Position: model.Vector3{X: 1, Y: 2, Z: 3}, ElapsedTime: 0.5, Name: "Bob"}, Index: 3},
				{Sample: model.Sample{Position: model.Vector3{X: 4, Y: 6, Z: 3}, ElapsedTime: 1, Name: "Bob"}, Index: 4, Linked: true},
			},
		},
		{Source: "/data/b.csv"},
	}
}

func TestNew(t *testing.T) {
	for _, format := range append(Formats, "") {
		f, err := New(format, &bytes.Buffer{})
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := New("xml", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestCSVFormatPaths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter(&buf).FormatPaths(testStats()))

	assert.Equal(t,
		"Source,Samples,Names,First Time,Last Time,Distance\n"+
			"/data/2024.05.17-09.30.15.csv,1200,Alice;Bob,0.01,12,345.25\n",
		buf.String())
}

func TestCSVFormatWindows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter(&buf).FormatWindows(testWindows()))

	assert.Equal(t,
		"Source,Index,Name,X,Y,Z,Elapsed Time,Linked\n"+
			"/data/a.csv,3,Bob,1,2,3,0.5,false\n"+
			"/data/a.csv,4,Bob,4,6,3,1,true\n",
		buf.String())
}

func TestJSONFormatWindows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).FormatWindows(testWindows()))

	out := buf.String()
	assert.Contains(t, out, `"source": "/data/a.csv"`)
	assert.Contains(t, out, `"elapsed_time": 0.5`)
	assert.Contains(t, out, `"linked": true`)
	assert.Contains(t, out, `"segments": []`, "empty window still lists its segments")
	assert.Contains(t, out, `"from": {`)
}

func TestJSONFormatPaths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).FormatPaths(testStats()))

	out := buf.String()
	assert.Contains(t, out, `"samples": 1200`)
	assert.Contains(t, out, `"names": [`)
	assert.Contains(t, out, `"distance": 345.25`)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.input))
	}
}

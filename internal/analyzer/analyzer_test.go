package analyzer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSession(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestAnalyzerRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")

	writeSession(t, dir, "a.csv", "X,Y,Z,time,date,actor name\n0,0,0,0,1,Bob\n100,100,0,1,1,Bob\n")
	// No trailing newline: the final record still counts.
	writeSession(t, dir, "b.csv", "X,Y,Z,time,date,actor name\n500,500,0,0,1,Alice")
	writeSession(t, dir, "heatgrid.csv", "X,Y,Number of Points\n9999,9999,1\n")
	writeSession(t, dir, "notes.txt", "1,2,3,4,5,ignored\n")

	report, err := New(&Config{DataDir: dir, OutDir: out}, filesystem.NewOS()).Run()
	require.NoError(t, err)

	assert.Len(t, report.Files, 2)
	require.NotNil(t, report.Grid)
	assert.Equal(t, 3, report.Grid.Samples)
	assert.Equal(t, Bounds{MinX: 0, MinY: 0, MaxX: 500, MaxY: 500}, report.Grid.Bounds)
	assert.Equal(t, [][]int{{2, 0}, {0, 1}}, report.Grid.Counts)

	data, err := os.ReadFile(report.CSVPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "X,Y,Number of Points,Grid Grain"))
	assert.Equal(t, filepath.Join(out, "heatgrid.csv"), report.CSVPath)

	info, err := os.Stat(report.PNGPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	require.NotNil(t, report.HeatMap)
	assert.Equal(t, DefaultRadius, report.HeatMap.Radius)
	assert.InDelta(t, 12.75, report.HeatMap.Weight, 1e-9)
	assert.Equal(t, 500, report.HeatMap.Width())
	assert.Equal(t, filepath.Join(out, "heatmap.png"), report.HeatMapPath)
	assert.FileExists(t, report.HeatMapPath)
}

func TestAnalyzerRunDefaultsOutputToDataDir(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "a.csv", "1,1,0,0,1,Bob\n")

	cfg := &Config{DataDir: dir}
	report, err := New(cfg, filesystem.NewOS()).Run()
	require.NoError(t, err)

	assert.Equal(t, DefaultGrain, cfg.Grain)
	assert.Equal(t, DefaultCell, cfg.Cell)
	assert.Equal(t, filepath.Join(dir, "heatgrid.csv"), report.CSVPath)

	// A second run ignores its own output.
	report, err = New(cfg, filesystem.NewOS()).Run()
	require.NoError(t, err)
	assert.Len(t, report.Files, 1)
	assert.Equal(t, 1, report.Grid.Samples)
}

func TestAnalyzerRunNoSamples(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "empty.csv", "X,Y,Z,time,date,actor name\n")

	_, err := New(&Config{DataDir: dir}, filesystem.NewOS()).Run()
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = New(&Config{DataDir: filepath.Join(dir, "missing")}, filesystem.NewOS()).Run()
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestAnalyzerRunInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "a.csv", "1,1,0,0,1,Bob\n")

	_, err := New(&Config{DataDir: dir, Grain: -5}, filesystem.NewOS()).Run()
	assert.ErrorIs(t, err, ErrInvalidGrain)

	_, err = New(&Config{DataDir: dir, Cell: -1}, filesystem.NewOS()).Run()
	assert.ErrorIs(t, err, ErrInvalidCell)

	_, err = New(&Config{DataDir: dir, Radius: -1}, filesystem.NewOS()).Run()
	assert.ErrorIs(t, err, ErrInvalidRadius)
}

func TestAnalyzerRunSkipsOversizedHeatMap(t *testing.T) {
	dir := t.TempDir()
	writeSession(t, dir, "a.csv", "0,0,0,0,1,Bob\n100000,100000,0,1,1,Bob\n")

	report, err := New(&Config{DataDir: dir, Grain: 10000}, filesystem.NewOS()).Run()
	require.NoError(t, err)
	assert.Nil(t, report.HeatMap)
	assert.Empty(t, report.HeatMapPath)
	assert.NoFileExists(t, filepath.Join(dir, "heatmap.png"))
	assert.FileExists(t, report.PNGPath)
}

package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParserParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "session.csv", strings.Join([]string{
		"X,Y,Z,time,date,actor name",
		"0,0,0,0.01,1700000000,Bob",
		"garbage",
		"1,0,0,0.02,1700000000,Bob",
		"2,0,0,0.03,1700000000,Bob",
	}, "\n")+"\n")

	result, err := NewParser(filesystem.NewOS()).ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, result.File)
	assert.Equal(t, 5, result.Lines)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Samples, 3)
	assert.Equal(t, model.Vector3{X: 2}, result.Samples[2].Position)
	assert.Equal(t, 0.03, result.Samples[2].ElapsedTime)
}

func TestParserDropsFinalLine(t *testing.T) {
	dir := t.TempDir()
	// No trailing newline: the last record is the final line and is dropped.
	path := writeFile(t, dir, "truncated.csv", "X,Y,Z,time,date,actor name\n0,0,0,1,0,Bob\n1,1,1,2,0,B")

	result, err := NewParser(filesystem.NewOS()).ParseFile(path)
	require.NoError(t, err)
	require.Len(t, result.Samples, 1)
	assert.Equal(t, "Bob", result.Samples[0].Name)
}

func TestFullParserKeepsFinalLine(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "full.csv", "X,Y,Z,time,date,actor name\n0,0,0,1,0,Bob\n1,1,1,2,0,Bob")

	result, err := NewFullParser(filesystem.NewOS()).ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, result.Samples, 2)
}

func TestParserEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.csv", "")

	result, err := NewParser(filesystem.NewOS()).ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, result.Samples)
	assert.Zero(t, result.Lines)
}

func TestParserMissingFile(t *testing.T) {
	_, err := NewParser(filesystem.NewOS()).ParseFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestParseLinesHeaderOnly(t *testing.T) {
	result := NewParser(filesystem.NewOS()).ParseLines([]string{"X,Y,Z,time,date,actor name", ""})
	assert.Empty(t, result.Samples)
	assert.Equal(t, 1, result.Skipped)
}

func TestParseFileFromResumesAfterConsumedLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "live.csv", "X,Y,Z,time,date,actor name\n")
	p := NewParser(filesystem.NewOS())

	first, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, first.Samples)
	assert.Equal(t, 1, first.Consumed, "the header is consumed, the empty remainder is not")

	// A record still being written stays unconsumed.
	writeFile(t, dir, "live.csv", "X,Y,Z,time,date,actor name\n0,0,0,1,0,Bob\n1,0,0,2,0,B")
	second, err := p.ParseFileFrom(path, first.Consumed)
	require.NoError(t, err)
	require.Len(t, second.Samples, 1)
	assert.Equal(t, 1.0, second.Samples[0].ElapsedTime)
	assert.Equal(t, 2, second.Consumed)

	writeFile(t, dir, "live.csv", "X,Y,Z,time,date,actor name\n0,0,0,1,0,Bob\n1,0,0,2,0,Bob\n")
	third, err := p.ParseFileFrom(path, second.Consumed)
	require.NoError(t, err)
	require.Len(t, third.Samples, 1)
	assert.Equal(t, 2.0, third.Samples[0].ElapsedTime)
	assert.Equal(t, 3, third.Consumed)

	fourth, err := p.ParseFileFrom(path, third.Consumed)
	require.NoError(t, err)
	assert.Empty(t, fourth.Samples)
	assert.Equal(t, 3, fourth.Consumed)
}

func TestParseFileFromShrunkFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "short.csv", "X,Y,Z,time,date,actor name\n")

	result, err := NewParser(filesystem.NewOS()).ParseFileFrom(path, 10)
	require.NoError(t, err)
	assert.Empty(t, result.Samples)
	assert.Equal(t, 10, result.Consumed)
}

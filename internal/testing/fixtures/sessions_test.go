package fixtures

import (
	"os"
	"testing"
	"time"

	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/penwyp/go-path-tracer/internal/data/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStraightLine(t *testing.T) {
	samples := StraightLine("Bob", model.Vector3{}, model.Vector3{X: 10}, 4, 0.5)
	require.Len(t, samples, 4)
	assert.Equal(t, 2.5, samples[0].Position.X)
	assert.Equal(t, 10.0, samples[3].Position.X)
	assert.Equal(t, 0.5, samples[0].ElapsedTime)
	assert.Equal(t, 2.0, samples[3].ElapsedTime)
}

func TestInterleave(t *testing.T) {
	bob := StraightLine("Bob", model.Vector3{}, model.Vector3{X: 2}, 2, 1)
	alice := StraightLine("Alice", model.Vector3{}, model.Vector3{Y: 3}, 3, 0.75)

	merged := Interleave(bob, alice)
	require.Len(t, merged, 5)

	names := make([]string, len(merged))
	for i, s := range merged {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Alice", "Bob", "Alice", "Bob", "Alice"}, names)
}

func TestWriteSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 5, 17, 9, 30, 15, 0, time.UTC)
	samples := StraightLine("Bob", model.Vector3{X: 1}, model.Vector3{X: 1, Y: 4, Z: -2}, 3, 0.1)

	path, err := NewSessionGenerator(dir).WriteSession(start, samples)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Contains(t, path, "2024.05.17-09.30.15.csv")

	result, err := parser.NewParser(filesystem.NewOS()).ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, samples, result.Samples)
	assert.Equal(t, 1, result.Skipped, "header")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), ",1715938215,Bob\n")
}

package analyzer

import (
	"testing"

	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(x float64, elapsed float64, name string) model.Sample {
	return model.Sample{Position: model.Vector3{X: x}, ElapsedTime: elapsed, Name: name}
}

func TestSummarizePaths(t *testing.T) {
	paths := []*pathstore.Path{
		{
			Source: "/data/2024.05.17-09.30.15.csv",
			Samples: []model.Sample{
				sample(0, 0.5, "Bob"),
				sample(100, 0.6, "Alice"),
				sample(3, 1.0, "Bob"),
				sample(110, 1.1, "Alice"),
				sample(7, 1.5, "Bob"),
			},
		},
		{Source: "/data/empty.csv"},
	}

	stats := SummarizePaths(paths)
	require.Len(t, stats, 2)

	first := stats[0]
	assert.Equal(t, "2024.05.17-09.30.15.csv", first.File)
	assert.Equal(t, 5, first.Samples)
	assert.Equal(t, []string{"Alice", "Bob"}, first.Names)
	assert.Equal(t, 0.5, first.FirstTime)
	assert.Equal(t, 1.5, first.LastTime)
	assert.Equal(t, 1.0, first.Duration())
	assert.InDelta(t, 17.0, first.Distance, 1e-9, "3 + 4 for Bob, 10 for Alice")

	empty := stats[1]
	assert.Zero(t, empty.Samples)
	assert.Empty(t, empty.Names)
	assert.Zero(t, empty.Distance)
}

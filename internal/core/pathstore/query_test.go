package pathstore

import (
	"testing"

	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplesAt(name string, times ...float64) []model.Sample {
	samples := make([]model.Sample, len(times))
	for i, t := range times {
		samples[i] = model.Sample{
			Position:    model.Vector3{X: t * 10},
			ElapsedTime: t,
			Name:        name,
		}
	}
	return samples
}

func storeWith(paths ...*Path) *Store {
	return &Store{paths: paths, loaded: make(map[string]*Path)}
}

func times(w Window) []float64 {
	out := make([]float64, len(w.Samples))
	for i, s := range w.Samples {
		out[i] = s.ElapsedTime
	}
	return out
}

func links(w Window) []bool {
	out := make([]bool, len(w.Samples))
	for i, s := range w.Samples {
		out[i] = s.Linked
	}
	return out
}

func TestInWindow(t *testing.T) {
	s := model.Sample{ElapsedTime: 2, Name: "Bob"}

	assert.True(t, InWindow(s, 3, 1, "Bob"))
	assert.True(t, InWindow(s, 2, 0.5, "Bob"), "upper bound inclusive")
	assert.True(t, InWindow(s, 4, 2, "Bob"), "lower bound inclusive")
	assert.False(t, InWindow(s, 4, 1.5, "Bob"))
	assert.False(t, InWindow(s, 1.9, 1, "Bob"), "future sample")
	assert.False(t, InWindow(s, 3, 1, "Alice"))
	assert.True(t, InWindow(s, 100, 0, "Bob"), "zero window is unbounded")
	assert.True(t, InWindow(s, 100, -1, "Bob"), "negative window is unbounded")
}

func TestQueryWindow(t *testing.T) {
	store := storeWith(newPath("a.csv", samplesAt("Bob", 0, 1, 2, 3, 4)))

	windows := store.Query(3, 1, "Bob")

	require.Len(t, windows, 1)
	assert.Equal(t, "a.csv", windows[0].Source)
	assert.Equal(t, []float64{2, 3}, times(windows[0]))
	assert.Equal(t, []bool{false, true}, links(windows[0]))
	assert.Equal(t, []model.Segment{{From: model.Vector3{X: 20}, To: model.Vector3{X: 30}}}, windows[0].Segments())
}

func TestQueryUnboundedWindow(t *testing.T) {
	for _, window := range []float64{0, -5} {
		store := storeWith(newPath("a.csv", samplesAt("Bob", 0, 1, 2, 3, 4)))

		windows := store.Query(3, window, "Bob")

		require.Len(t, windows, 1)
		assert.Equal(t, []float64{0, 1, 2, 3}, times(windows[0]))
		assert.Equal(t, []bool{false, true, true, true}, links(windows[0]))
		assert.Len(t, windows[0].Segments(), 3)
	}
}

func TestQueryNameFilterBreaksLinks(t *testing.T) {
	samples := samplesAt("Bob", 0, 1, 2, 3)
	samples[1].Name = "Alice"
	store := storeWith(newPath("a.csv", samples))

	windows := store.Query(3, 0, "Bob")

	require.Len(t, windows, 1)
	assert.Equal(t, []float64{0, 2, 3}, times(windows[0]))
	assert.Equal(t, []bool{false, false, true}, links(windows[0]))
	assert.Equal(t, []int{0, 2, 3}, []int{windows[0].Samples[0].Index, windows[0].Samples[1].Index, windows[0].Samples[2].Index})
	assert.Len(t, windows[0].Segments(), 1)
}

func TestQueryUnknownNameIsEmpty(t *testing.T) {
	store := storeWith(
		newPath("a.csv", samplesAt("Bob", 0, 1)),
		newPath("b.csv", nil),
	)

	windows := store.Query(10, 0, "Nobody")

	require.Len(t, windows, 2)
	for _, w := range windows {
		assert.Empty(t, w.Samples)
		assert.Empty(t, w.Segments())
	}
}

func TestQueryAdvancesCursor(t *testing.T) {
	path := newPath("a.csv", samplesAt("Bob", 0, 1, 2, 3, 4, 5))
	store := storeWith(path)

	store.Query(2, 1, "Bob")
	assert.Equal(t, 1, path.Cursor())

	store.Query(4, 1, "Bob")
	assert.Equal(t, 3, path.Cursor())

	// No match leaves the cursor where it was.
	store.Query(4, 1, "Alice")
	assert.Equal(t, 3, path.Cursor())
}

func TestQueryCursorStaysAtFirstRun(t *testing.T) {
	samples := samplesAt("Bob", 0, 1, 1.5, 2, 3)
	samples[2].Name = "Alice"
	path := newPath("a.csv", samples)
	store := storeWith(path)

	// Two in-window runs split by Alice: the cursor keeps the start of the first.
	first := store.Query(3, 2.5, "Bob")
	assert.Equal(t, []float64{1, 2, 3}, times(first[0]))
	assert.Equal(t, 1, path.Cursor())

	again := store.Query(3, 2.5, "Bob")
	assert.Equal(t, first, again)
}

func TestQueryCursorMatchesFullScan(t *testing.T) {
	samples := samplesAt("Bob", 0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4)
	samples[4].Name = "Alice"
	incremental := storeWith(newPath("a.csv", samples))

	for now := 0.0; now <= 4.5; now += 0.25 {
		got := incremental.Query(now, 1, "Bob")

		fresh := storeWith(newPath("a.csv", samples))
		want := fresh.Query(now, 1, "Bob")

		assert.Equal(t, want, got, "time %.2f", now)
	}
}

func TestQueryRewindNeedsReset(t *testing.T) {
	path := newPath("a.csv", samplesAt("Bob", 0, 1, 2, 3, 4))
	store := storeWith(path)

	store.Query(4, 1, "Bob")
	stale := store.Query(1, 1, "Bob")
	assert.Empty(t, stale[0].Samples, "samples behind the cursor are not revisited")

	store.ResetCursors()
	assert.Zero(t, path.Cursor())
	fresh := store.Query(1, 1, "Bob")
	assert.Equal(t, []float64{0, 1}, times(fresh[0]))
}

func TestQueryInterleavedEntitiesFullScan(t *testing.T) {
	// Alice leaves Bob's window, Bob re-enters later in the same file.
	samples := []model.Sample{
		{ElapsedTime: 1, Name: "Bob"},
		{ElapsedTime: 1, Name: "Alice"},
		{ElapsedTime: 2, Name: "Bob"},
	}
	store := storeWith(newPath("mixed.csv", samples))

	windows := store.Query(2, 0, "Bob")
	assert.Equal(t, []float64{1, 2}, times(windows[0]))
	assert.Equal(t, []bool{false, false}, links(windows[0]))
}

package tracking

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/penwyp/go-path-tracer/internal/config"
	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
	"github.com/penwyp/go-path-tracer/internal/core/recorder"
	"github.com/penwyp/go-path-tracer/internal/core/tracker"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/penwyp/go-path-tracer/internal/metrics"
	"github.com/penwyp/go-path-tracer/internal/util"
)

// FeedResult summarises a recording run.
type FeedResult struct {
	SessionFile string
	Lines       int
	Invalid     int
	Written     int
	Dropped     int
	Elapsed     float64
}

// Feeder records a simulated entity driven by a stream of positions. Every
// position line is one tick of TickSeconds.
type Feeder struct {
	cfg         config.Config
	name        string
	tickSeconds float64
	fs          filesystem.FileSystem
	clock       recorder.Clock
	metrics     *metrics.Collector
}

func NewFeeder(cfg config.Config, name string, tickSeconds float64, fs filesystem.FileSystem, clock recorder.Clock, m *metrics.Collector) *Feeder {
	cfg.RecordingEnabled = true
	cfg.ReplayEnabled = false
	cfg.Watch = false
	return &Feeder{
		cfg:         cfg,
		name:        name,
		tickSeconds: tickSeconds,
		fs:          fs,
		clock:       clock,
		metrics:     m,
	}
}

// Run reads positions from r until EOF or ctx is cancelled.
func (f *Feeder) Run(ctx context.Context, r io.Reader) (FeedResult, error) {
	actor := NewActor(f.name)
	world := tracker.WorldFunc(func() (pathstore.Renderer, bool) { return nil, false })
	t := tracker.New(f.cfg, actor, world, f.fs, f.clock, tracker.WithMetrics(f.metrics))

	result := FeedResult{SessionFile: t.Recorder().Session().FilePath}
	if !t.Recorder().DirectoryReady() {
		return result, fmt.Errorf("data directory %s is not usable", f.cfg.DataDir)
	}

	t.BeginPlay()
	defer t.EndPlay()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result.Lines++

		position, err := ParsePosition(line)
		if err != nil {
			result.Invalid++
			util.LogWarn("Skipping position line", util.F("line", result.Lines), util.F("error", err))
			continue
		}

		actor.SetPosition(position)
		t.Tick(f.tickSeconds)
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("failed to read positions: %w", err)
	}

	result.Written, result.Dropped = t.Recorder().Stats()
	result.Elapsed = t.Recorder().ElapsedTime()
	return result, nil
}

// ParsePosition reads three numbers separated by commas, semicolons or whitespace.
func ParsePosition(line string) (model.Vector3, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	if len(fields) != 3 {
		return model.Vector3{}, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}

	var v [3]float64
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return model.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", field, err)
		}
		v[i] = f
	}
	return model.Vector3{X: v[0], Y: v[1], Z: v[2]}, nil
}

package tracker

import (
	"github.com/penwyp/go-path-tracer/internal/config"
	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
	"github.com/penwyp/go-path-tracer/internal/core/recorder"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/penwyp/go-path-tracer/internal/data/watcher"
	"github.com/penwyp/go-path-tracer/internal/metrics"
	"github.com/penwyp/go-path-tracer/internal/util"
)

// WorldResolver hands out the renderer of the world the entity lives in.
// It reports false while the world is not loaded yet.
type WorldResolver interface {
	World() (pathstore.Renderer, bool)
}

// WorldFunc adapts a function to WorldResolver.
type WorldFunc func() (pathstore.Renderer, bool)

func (f WorldFunc) World() (pathstore.Renderer, bool) { return f() }

// Frame summarises what one tick drew.
type Frame struct {
	ElapsedTime float64
	Windows     []pathstore.Window
	Points      int
	Segments    int
	Drawn       bool
}

// Tracker records one entity's movement and replays recorded paths around it.
// All methods are meant to be called from the host's tick thread.
type Tracker struct {
	cfg      config.Config
	entity   recorder.Entity
	resolver WorldResolver
	world    pathstore.Renderer
	fs       filesystem.FileSystem

	recorder *recorder.Recorder
	store    *pathstore.Store
	watcher  *watcher.FileWatcher
	metrics  *metrics.Collector
	style    pathstore.Style
}

// Option customises a Tracker.
type Option func(*Tracker)

// WithMetrics counts recorder and store activity on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(t *Tracker) {
		t.metrics = c
	}
}

// WithStyle changes how replayed paths are drawn.
func WithStyle(style pathstore.Style) Option {
	return func(t *Tracker) {
		t.style = style
	}
}

// New wires a recorder and a path store for entity. The data directory is
// created here when recording or replay will need it.
func New(cfg config.Config, entity recorder.Entity, resolver WorldResolver, fs filesystem.FileSystem, clock recorder.Clock, opts ...Option) *Tracker {
	t := &Tracker{
		cfg:      cfg,
		entity:   entity,
		resolver: resolver,
		fs:       fs,
		style:    pathstore.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.recorder = recorder.New(cfg.DataDir, entity, fs, clock, recorder.Config{
		Enabled:        cfg.RecordingEnabled,
		SampleInterval: cfg.SampleInterval,
	}, recorder.WithMetrics(t.metrics))
	t.store = pathstore.NewStore(cfg.DataDir, fs, pathstore.WithMetrics(t.metrics))
	return t
}

// BeginPlay writes the session header and, when replay is on, loads the
// recorded paths.
func (t *Tracker) BeginPlay() {
	t.recorder.Activate()

	if !t.cfg.ReplayEnabled || !t.recorder.DirectoryReady() {
		return
	}
	t.store.Load()

	if t.cfg.Watch {
		fw, err := watcher.NewFileWatcher(t.cfg.DataDir)
		if err != nil {
			util.LogWarn("Live refresh disabled, cannot watch data directory",
				util.F("dir", t.cfg.DataDir), util.F("error", err))
			return
		}
		t.watcher = fw
	}
}

// Tick advances recording by dt seconds, picks up new and growing session
// files, and draws the replay window once the world is available.
func (t *Tracker) Tick(dt float64) Frame {
	t.recorder.Tick(dt)
	frame := Frame{ElapsedTime: t.recorder.ElapsedTime()}

	if t.watcher != nil {
		t.applyFileEvents()
	}

	if t.world == nil {
		if world, ok := t.resolver.World(); ok && world != nil {
			t.world = world
		}
	}

	if t.world != nil && t.cfg.ReplayEnabled {
		frame.Windows = t.store.Query(frame.ElapsedTime, t.cfg.ReplayWindow, t.entity.DisplayName())
		frame.Points, frame.Segments = pathstore.Render(frame.Windows, t.world, t.style)
		frame.Drawn = true
	}
	return frame
}

// applyFileEvents updates the store for every session file that changed
// since the previous tick. The tracker's own session file is left as loaded
// by BeginPlay.
func (t *Tracker) applyFileEvents() {
	own := t.recorder.Session().FilePath
	seen := make(map[string]struct{})
	for _, event := range t.watcher.Drain() {
		if event.Path == own {
			continue
		}
		if _, ok := seen[event.Path]; ok {
			continue
		}
		seen[event.Path] = struct{}{}

		if added := t.store.Update(event.Path); added > 0 {
			util.LogDebug("Path updated", util.F("file", event.Path), util.F("samples", added))
		}
	}
}

// EndPlay stops watching the data directory.
func (t *Tracker) EndPlay() {
	if t.watcher != nil {
		if err := t.watcher.Close(); err != nil {
			util.LogDebug("Closing watcher failed", util.F("error", err))
		}
		t.watcher = nil
	}
}

// SetRecordingEnabled toggles sampling.
func (t *Tracker) SetRecordingEnabled(enabled bool) {
	t.cfg.RecordingEnabled = enabled
	t.recorder.SetEnabled(enabled)
}

// SetReplayWindow changes the replay lookback; zero or less shows the whole path.
func (t *Tracker) SetReplayWindow(seconds float64) {
	t.cfg.ReplayWindow = seconds
}

// SetReplayEnabled toggles drawing. Paths are only loaded by BeginPlay.
func (t *Tracker) SetReplayEnabled(enabled bool) {
	t.cfg.ReplayEnabled = enabled
}

// Config returns the current settings.
func (t *Tracker) Config() config.Config { return t.cfg }

// Style returns how replayed paths are drawn.
func (t *Tracker) Style() pathstore.Style { return t.style }

// Recorder exposes the write side.
func (t *Tracker) Recorder() *recorder.Recorder { return t.recorder }

// Store exposes the read side.
func (t *Tracker) Store() *pathstore.Store { return t.store }

// Watching reports whether new session files are picked up while running.
func (t *Tracker) Watching() bool { return t.watcher != nil }

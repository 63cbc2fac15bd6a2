package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/penwyp/go-path-tracer/internal/config"
	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
	"github.com/penwyp/go-path-tracer/internal/core/recorder"
	"github.com/penwyp/go-path-tracer/internal/core/tracker"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/penwyp/go-path-tracer/internal/metrics"
	"github.com/penwyp/go-path-tracer/internal/presentation/display"
	"github.com/penwyp/go-path-tracer/internal/util"
)

// ReplayConfig drives a live replay.
type ReplayConfig struct {
	Tracker config.Config
	Name    string
	// Start is the replay time of the first frame, in seconds.
	Start float64
	// Tick is the wall-clock interval between frames; replay time advances
	// by the same amount.
	Tick time.Duration
	// Frames stops the replay after that many frames; zero runs until cancelled.
	Frames int
}

// Orchestrator advances a tracker in real time and shows each frame.
type Orchestrator struct {
	config  ReplayConfig
	tracker *tracker.Tracker
	display *display.LiveDisplay
}

func NewOrchestrator(cfg ReplayConfig, fs filesystem.FileSystem, clock recorder.Clock, d *display.LiveDisplay, m *metrics.Collector) (*Orchestrator, error) {
	if cfg.Tick <= 0 {
		return nil, fmt.Errorf("tick must be positive, got %v", cfg.Tick)
	}

	cfg.Tracker.RecordingEnabled = false
	cfg.Tracker.ReplayEnabled = true

	world := tracker.WorldFunc(func() (pathstore.Renderer, bool) { return discardRenderer{}, true })
	t := tracker.New(cfg.Tracker, NewActor(cfg.Name), world, fs, clock, tracker.WithMetrics(m))

	return &Orchestrator{config: cfg, tracker: t, display: d}, nil
}

// Tracker returns the driven tracker.
func (o *Orchestrator) Tracker() *tracker.Tracker { return o.tracker }

// Run shows frames until ctx is cancelled or the frame budget is used up.
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting live replay", util.F("name", o.config.Name), util.F("start", o.config.Start))

	o.tracker.BeginPlay()
	defer o.tracker.EndPlay()

	o.display.Enter()
	defer o.display.Exit()

	if err := o.render(o.tracker.Tick(o.config.Start)); err != nil {
		return err
	}

	ticker := time.NewTicker(o.config.Tick)
	defer ticker.Stop()

	step := o.config.Tick.Seconds()
	for frames := 1; o.config.Frames == 0 || frames < o.config.Frames; frames++ {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down live replay...")
			return nil
		case <-ticker.C:
			if err := o.render(o.tracker.Tick(step)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *Orchestrator) render(frame tracker.Frame) error {
	return o.display.Render(display.Frame{
		Name:     o.config.Name,
		Time:     frame.ElapsedTime,
		Window:   o.tracker.Config().ReplayWindow,
		Paths:    o.tracker.Store().Len(),
		Windows:  frame.Windows,
		Points:   frame.Points,
		Segments: frame.Segments,
	})
}

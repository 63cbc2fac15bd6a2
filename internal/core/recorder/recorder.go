package recorder

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/penwyp/go-path-tracer/internal/core/constants"
	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/penwyp/go-path-tracer/internal/data/parser"
	"github.com/penwyp/go-path-tracer/internal/metrics"
	"github.com/penwyp/go-path-tracer/internal/util"
)

// Entity is the tracked object.
type Entity interface {
	CurrentPosition() model.Vector3
	DisplayName() string
}

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

// Config holds the user-settable recorder options.
type Config struct {
	Enabled        bool
	SampleInterval float64
}

// Session is the single destination file of one activation.
type Session struct {
	ID        string
	FilePath  string
	StartedAt time.Time
}

// Recorder samples an entity's position at a fixed interval and appends each
// sample to the session file. Every write opens, appends and closes the file.
type Recorder struct {
	fs      filesystem.FileSystem
	clock   Clock
	entity  Entity
	metrics *metrics.Collector
	logger  util.LoggerInterface

	session        Session
	directoryReady bool

	enabled  bool
	interval float64

	elapsedTime         float64
	timeSinceLastSample float64

	written int
	dropped int
}

// Option customises a Recorder.
type Option func(*Recorder)

// WithMetrics counts writes on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Recorder) {
		r.metrics = c
	}
}

// New creates a recorder writing into dir. The directory is created when
// absent; if that fails the recorder never writes during this session.
// The session file is named after the current wall-clock time.
func New(dir string, entity Entity, fs filesystem.FileSystem, clock Clock, cfg Config, opts ...Option) *Recorder {
	now := clock.Now()
	r := &Recorder{
		fs:       fs,
		clock:    clock,
		entity:   entity,
		enabled:  cfg.Enabled,
		interval: cfg.SampleInterval,
		session: Session{
			ID:        uuid.NewString(),
			FilePath:  filepath.Join(dir, now.Format(constants.SessionFileLayout)+constants.FileExtension),
			StartedAt: now,
		},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.logger = util.GetLogger()
	if r.logger != nil {
		r.logger = r.logger.With(util.F("session_id", r.session.ID))
	}

	if err := fs.EnsureDirectory(dir); err != nil {
		r.warn("Recording disabled, data directory unavailable", util.F("dir", dir), util.F("error", err))
	} else {
		r.directoryReady = true
	}
	return r
}

// Activate stamps the session file with the column header.
// Like every write it is gated on recording being enabled.
func (r *Recorder) Activate() {
	r.debug("Recorder activated", util.F("file", r.session.FilePath), util.F("enabled", r.enabled))
	r.write(constants.CSVHeader)
}

// Tick advances the recorder by dt seconds and records a sample once the
// sample interval has elapsed since the previous attempt.
func (r *Recorder) Tick(dt float64) {
	r.elapsedTime += dt
	r.timeSinceLastSample += dt

	if r.timeSinceLastSample < r.interval {
		return
	}

	if r.enabled {
		sample := model.Sample{
			Position:    r.entity.CurrentPosition(),
			ElapsedTime: r.elapsedTime,
			Name:        r.entity.DisplayName(),
		}
		r.write(parser.EncodeLine(sample, r.clock.Now().Unix()))
	}
	r.timeSinceLastSample = 0
}

func (r *Recorder) write(line string) {
	if !r.enabled || !r.directoryReady {
		return
	}

	if err := r.fs.AppendLine(r.session.FilePath, line); err != nil {
		r.dropped++
		r.metrics.SampleDropped()
		r.debug("Dropped record", util.F("error", err))
		return
	}
	r.written++
	r.metrics.SampleWritten()
}

// SetEnabled turns sampling on or off.
func (r *Recorder) SetEnabled(enabled bool) {
	r.enabled = enabled
}

// SetSampleInterval changes the interval between samples, in seconds.
func (r *Recorder) SetSampleInterval(seconds float64) {
	r.interval = seconds
}

// Enabled reports whether sampling is switched on.
func (r *Recorder) Enabled() bool { return r.enabled }

// DirectoryReady reports whether the data directory was available at construction.
func (r *Recorder) DirectoryReady() bool { return r.directoryReady }

// ElapsedTime is the number of seconds ticked since construction.
func (r *Recorder) ElapsedTime() float64 { return r.elapsedTime }

// Session describes the destination file.
func (r *Recorder) Session() Session { return r.session }

// Stats returns the number of lines written and dropped, header included.
func (r *Recorder) Stats() (written, dropped int) { return r.written, r.dropped }

func (r *Recorder) String() string {
	return fmt.Sprintf("recorder(%s, elapsed=%.3fs, written=%d)", r.session.FilePath, r.elapsedTime, r.written)
}

func (r *Recorder) debug(msg string, fields ...util.Field) {
	if r.logger != nil {
		r.logger.Debug(msg, fields...)
	}
}

func (r *Recorder) warn(msg string, fields ...util.Field) {
	if r.logger != nil {
		r.logger.Warn(msg, fields...)
	}
}

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/penwyp/go-path-tracer/internal/core/constants"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PATH_TRACER_SAMPLE_INTERVAL.
const EnvPrefix = "PATH_TRACER_"

var (
	ErrInvalidInterval = errors.New("sample interval must be a positive number of seconds")
	ErrInvalidWindow   = errors.New("replay window must be a finite number of seconds")
)

// Config holds the tracker settings.
type Config struct {
	// Recording
	RecordingEnabled bool    `yaml:"recording_enabled" env:"RECORDING_ENABLED"`
	SampleInterval   float64 `yaml:"sample_interval" env:"SAMPLE_INTERVAL"`

	// Replay
	ReplayEnabled bool    `yaml:"replay_enabled" env:"REPLAY_ENABLED"`
	ReplayWindow  float64 `yaml:"replay_window" env:"REPLAY_WINDOW"`
	Watch         bool    `yaml:"watch" env:"WATCH"`

	// Storage
	DataDir string `yaml:"data_dir" env:"DATA_DIR"`

	// Logging
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	Timezone string `yaml:"timezone" env:"TIMEZONE"`
}

// Default returns the settings of a freshly added tracker: nothing recorded,
// nothing replayed.
func Default() Config {
	return Config{
		SampleInterval: constants.DefaultSampleInterval,
		ReplayWindow:   constants.DefaultReplayWindow,
		LogLevel:       "info",
		Timezone:       "Local",
	}
}

// Load builds a Config from defaults, the optional YAML file at path, and
// PATH_TRACER_* environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate fills empty fields with defaults and rejects unusable values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.SampleInterval <= 0 || math.IsNaN(c.SampleInterval) || math.IsInf(c.SampleInterval, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, c.SampleInterval)
	}
	if math.IsNaN(c.ReplayWindow) || math.IsInf(c.ReplayWindow, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, c.ReplayWindow)
	}
	return nil
}

// DefaultDataDir is Data/MovementTracker under the working directory.
func DefaultDataDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return filepath.FromSlash(constants.DataSubdir)
	}
	return filepath.Join(wd, filepath.FromSlash(constants.DataSubdir))
}

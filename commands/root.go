package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-path-tracer/internal/config"
	"github.com/penwyp/go-path-tracer/internal/metrics"
	"github.com/penwyp/go-path-tracer/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug     bool
	logFile   string
	logFormat string

	// Data path and settings
	dataDir    string
	configFile string

	// Metrics
	showMetrics bool

	// Resolved settings shared by all sub-commands
	appConfig config.Config
	collector *metrics.Collector

	rootCmd = &cobra.Command{
		Use:   "go-path-tracer",
		Short: "Record and replay entity movement paths",
		Long: `go-path-tracer records the position of a moving entity into timestamped CSV session
files and replays recorded paths as a sliding time window.

Session files live in Data/MovementTracker under the working directory unless --dir
or the data_dir setting says otherwise.

Examples:
  go-path-tracer record --name Bob --input route.txt --tick 0.1   # Record a simulated entity
  go-path-tracer replay --name Bob --at 12.5 --window 2           # Show Bob's samples around t=12.5s
  go-path-tracer replay --name Bob --live --watch                 # Replay in real time, picking up new sessions
  go-path-tracer paths --output json                              # Summarise every recorded path
  go-path-tracer heatgrid --grain 100                             # Export heatgrid.csv and heatgrid.png`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

const defaultLogFile = "~/.go-path-tracer/logs/app.log"

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "",
		"Session file directory (default <cwd>/Data/MovementTracker)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"YAML settings file")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode (debug level, logs echoed to stderr)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false,
		"Print activity counters to stderr on exit")
}

// setup resolves settings from defaults, the config file, the environment and
// flags, then starts logging.
func setup(cmd *cobra.Command, args []string) error {
	path := configFile
	if path != "" {
		path = expandPath(path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = expandPath(dataDir)
	}

	if err := initLogging(cfg.LogLevel); err != nil {
		return err
	}
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return fmt.Errorf("failed to initialize timezone: %w", err)
	}

	appConfig = cfg
	collector = metrics.NewCollector()
	util.LogDebug("Settings resolved", util.F("command", cmd.Name()), util.F("data_dir", cfg.DataDir))
	return nil
}

func initLogging(level string) error {
	if debug {
		level = "debug"
	}

	file := ""
	if logFile != "" {
		file = expandPath(logFile)
		if err := ensureDir(filepath.Dir(file)); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	return util.InitLogger(util.LoggerConfig{
		Level:   level,
		File:    file,
		Console: debug || file == "",
		Format:  util.ParseLogFormat(logFormat),
	})
}

// printMetrics writes the counters when --metrics is set.
func printMetrics(w io.Writer) {
	if !showMetrics {
		return
	}
	fmt.Fprintln(w, "Metrics:")
	if err := collector.WriteText(w); err != nil {
		util.LogWarn("Failed to print metrics", util.F("error", err))
	}
}

func Execute() error {
	defer util.CloseLogger()
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

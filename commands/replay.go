package commands

import (
	"os"
	"os/signal"
	"time"

	"github.com/penwyp/go-path-tracer/internal/application/tracking"
	"github.com/penwyp/go-path-tracer/internal/config"
	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/penwyp/go-path-tracer/internal/presentation/display"
	"github.com/penwyp/go-path-tracer/internal/presentation/formatter"
	"github.com/penwyp/go-path-tracer/internal/presentation/layout"
	"github.com/penwyp/go-path-tracer/internal/util"
	"github.com/spf13/cobra"
)

var (
	replayName   string
	replayAt     float64
	replayWindow float64
	replayOutput string
	replayLive   bool
	replayWatch  bool
	replayTick   time.Duration
	replayFrames int
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Show recorded samples of an entity inside a time window",
	Long: `Loads every session file and selects the samples of --name whose elapsed time
lies in [at - window, at]. A window of zero or less selects everything up to --at.
Consecutive selected samples of a path are joined by a segment.

With --live the replay time starts at --at and advances in real time every --tick.`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayName, "name", "n", "",
		"Entity display name to replay")
	replayCmd.Flags().Float64Var(&replayAt, "at", 0,
		"Replay time in seconds since session start")
	replayCmd.Flags().Float64VarP(&replayWindow, "window", "w", 0,
		"Lookback in seconds (default replay_window setting)")
	replayCmd.Flags().StringVarP(&replayOutput, "output", "o", "table",
		"Output format (table, json, csv)")

	replayCmd.Flags().BoolVar(&replayLive, "live", false,
		"Advance the replay time in real time until interrupted")
	replayCmd.Flags().BoolVar(&replayWatch, "watch", false,
		"Pick up session files created while replaying live")
	replayCmd.Flags().DurationVar(&replayTick, "tick", 100*time.Millisecond,
		"Frame interval for --live")
	replayCmd.Flags().IntVar(&replayFrames, "frames", 0,
		"Stop --live after this many frames (0 = until interrupted)")
	replayCmd.MarkFlagRequired("name")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if cmd.Flags().Changed("window") {
		cfg.ReplayWindow = replayWindow
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = replayWatch
	}

	if replayLive {
		return runLiveReplay(cmd, cfg)
	}

	f, err := formatter.New(replayOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	store := pathstore.NewStore(cfg.DataDir, filesystem.NewOS(), pathstore.WithMetrics(collector))
	store.Load()

	windows := store.Query(replayAt, cfg.ReplayWindow, replayName)
	util.LogDebug("Replay query", util.F("name", replayName), util.F("at", replayAt),
		util.F("window", cfg.ReplayWindow), util.F("paths", store.Len()))

	if err := f.FormatWindows(windows); err != nil {
		return err
	}
	printMetrics(cmd.ErrOrStderr())
	return nil
}

func runLiveReplay(cmd *cobra.Command, cfg config.Config) error {
	out := cmd.OutOrStdout()
	interactive := out == os.Stdout && layout.IsTerminal(os.Stdout)

	o, err := tracking.NewOrchestrator(tracking.ReplayConfig{
		Tracker: cfg,
		Name:    replayName,
		Start:   replayAt,
		Tick:    replayTick,
		Frames:  replayFrames,
	}, filesystem.NewOS(), util.GetTimeProvider(), display.NewLiveDisplay(out, interactive), collector)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	if err := o.Run(ctx); err != nil {
		return err
	}
	printMetrics(cmd.ErrOrStderr())
	return nil
}

package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/penwyp/go-path-tracer/internal/application/tracking"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/penwyp/go-path-tracer/internal/util"
	"github.com/spf13/cobra"
)

var (
	recordName     string
	recordInput    string
	recordTick     float64
	recordInterval float64
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a simulated entity into a new session file",
	Long: `Reads one position per line ("x,y,z" or "x y z") and advances the recorder by
--tick seconds per line. A sample is written whenever --interval seconds have
passed since the previous one. Blank lines and lines starting with # are ignored.`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().StringVarP(&recordName, "name", "n", "",
		"Entity display name written with every sample")
	recordCmd.Flags().StringVarP(&recordInput, "input", "i", "-",
		"Position file, - for stdin")
	recordCmd.Flags().Float64Var(&recordTick, "tick", 0.01,
		"Seconds advanced per position line")
	recordCmd.Flags().Float64Var(&recordInterval, "interval", 0,
		"Seconds between samples (default sample_interval setting)")
	recordCmd.MarkFlagRequired("name")
}

func runRecord(cmd *cobra.Command, args []string) error {
	if recordTick <= 0 {
		return fmt.Errorf("tick must be positive, got %v", recordTick)
	}

	cfg := appConfig
	if cmd.Flags().Changed("interval") {
		cfg.SampleInterval = recordInterval
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	var input io.Reader = cmd.InOrStdin()
	if recordInput != "-" {
		f, err := os.Open(expandPath(recordInput))
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		input = f
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	feeder := tracking.NewFeeder(cfg, recordName, recordTick, filesystem.NewOS(), util.GetTimeProvider(), collector)
	result, err := feeder.Run(ctx, input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session file: %s\n", result.SessionFile)
	fmt.Fprintf(out, "Positions:    %d (%d invalid)\n", result.Lines, result.Invalid)
	fmt.Fprintf(out, "Lines written: %d, dropped: %d\n", result.Written, result.Dropped)
	fmt.Fprintf(out, "Elapsed:      %.2fs\n", result.Elapsed)
	printMetrics(cmd.ErrOrStderr())
	return nil
}

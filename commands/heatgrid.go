package commands

import (
	"errors"
	"fmt"

	"github.com/penwyp/go-path-tracer/internal/analyzer"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/spf13/cobra"
)

var (
	heatGrain  int
	heatBorder int
	heatCell   int
	heatRadius int
	heatOut    string
)

var heatgridCmd = &cobra.Command{
	Use:   "heatgrid",
	Short: "Export a heat grid and heat map of every recorded position",
	Long: `Bins the X/Y position of every sample of every session file into square tiles
of --grain world units and writes heatgrid.csv and heatgrid.png.

Tiles are coloured on a blue, cyan, yellow, red ramp whose break points are the
20th, 40th, 60th and 80th percentiles of the non-empty tile counts.

heatmap.png has one pixel per world unit. Every sample warms the pixels within
--radius of it, fading linearly with distance.`,
	RunE: runHeatgrid,
}

func init() {
	rootCmd.AddCommand(heatgridCmd)

	heatgridCmd.Flags().IntVar(&heatGrain, "grain", analyzer.DefaultGrain,
		"Tile size in world units")
	heatgridCmd.Flags().IntVar(&heatBorder, "border", 0,
		"Border size in world units")
	heatgridCmd.Flags().IntVar(&heatCell, "cell", analyzer.DefaultCell,
		"Pixels per tile in heatgrid.png")
	heatgridCmd.Flags().IntVar(&heatRadius, "radius", analyzer.DefaultRadius,
		"Path radius in world units for heatmap.png")
	heatgridCmd.Flags().StringVar(&heatOut, "out", "",
		"Output directory (default the data directory)")
}

func runHeatgrid(cmd *cobra.Command, args []string) error {
	if heatGrain <= 0 {
		return analyzer.ErrInvalidGrain
	}
	if heatCell <= 0 {
		return analyzer.ErrInvalidCell
	}
	if heatRadius <= 0 {
		return analyzer.ErrInvalidRadius
	}
	if heatBorder < 0 {
		return analyzer.ErrInvalidBorder
	}

	outDir := appConfig.DataDir
	if heatOut != "" {
		outDir = expandPath(heatOut)
	}

	a := analyzer.New(&analyzer.Config{
		DataDir: appConfig.DataDir,
		OutDir:  outDir,
		Grain:   heatGrain,
		Border:  heatBorder,
		Cell:    heatCell,
		Radius:  heatRadius,
	}, filesystem.NewOS())

	report, err := a.Run()
	if err != nil {
		if errors.Is(err, analyzer.ErrNoSamples) {
			return fmt.Errorf("%w in %s", err, appConfig.DataDir)
		}
		return err
	}

	grid := report.Grid
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Files analyzed: %d\n", len(report.Files))
	fmt.Fprintf(out, "Samples: %d\n", grid.Samples)
	fmt.Fprintf(out, "Area: %d x %d\n", grid.Bounds.Width(), grid.Bounds.Height())
	fmt.Fprintf(out, "Grid size: %d x %d\n", grid.Columns(), grid.Rows())
	fmt.Fprintf(out, "Highest number of points: %d\n", grid.Max)
	fmt.Fprintf(out, "Second best: %d\n", grid.SecondBest)
	fmt.Fprintf(out, "Grid grain: %d\n", grid.Grain)
	fmt.Fprintf(out, "Wrote %s and %s\n", report.CSVPath, report.PNGPath)
	if m := report.HeatMap; m != nil {
		fmt.Fprintf(out, "Image size: %d x %d\n", m.Width(), m.Height())
		fmt.Fprintf(out, "Path radius: %d\n", m.Radius)
		fmt.Fprintf(out, "Wrote %s\n", report.HeatMapPath)
	} else {
		fmt.Fprintf(out, "Skipped %s, area larger than %d pixels\n", analyzer.HeatMapPNG, analyzer.MaxHeatMapPixels)
	}
	return nil
}

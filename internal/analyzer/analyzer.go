package analyzer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/penwyp/go-path-tracer/internal/core/constants"
	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/penwyp/go-path-tracer/internal/data/parser"
	"github.com/penwyp/go-path-tracer/internal/data/scanner"
	"github.com/penwyp/go-path-tracer/internal/util"
)

const (
	DefaultGrain  = 250
	DefaultCell   = 4
	DefaultRadius = 50
	HeatGridPNG   = "heatgrid.png"
	HeatMapPNG    = "heatmap.png"
)

type Config struct {
	DataDir string
	OutDir  string
	Grain   int
	Border  int
	Cell    int
	// Radius is the heat map path radius in world units.
	Radius int
}

// Report describes one heat grid run.
type Report struct {
	Files   []string
	Skipped int
	Grid    *HeatGrid
	CSVPath string
	PNGPath string
	// HeatMap is nil when the sampled area is too large to rasterise.
	HeatMap     *HeatMap
	HeatMapPath string
}

type Analyzer struct {
	config  *Config
	fs      filesystem.FileSystem
	scanner *scanner.FileScanner
	parser  *parser.Parser
}

func New(config *Config, fs filesystem.FileSystem) *Analyzer {
	if config.Grain == 0 {
		config.Grain = DefaultGrain
	}
	if config.Cell == 0 {
		config.Cell = DefaultCell
	}
	if config.Radius == 0 {
		config.Radius = DefaultRadius
	}
	if config.OutDir == "" {
		config.OutDir = config.DataDir
	}

	return &Analyzer{
		config:  config,
		fs:      fs,
		scanner: scanner.NewFileScanner(config.DataDir),
		parser:  parser.NewFullParser(fs),
	}
}

// Run reads every session file of the data directory, bins the samples and
// writes heatgrid.csv, heatgrid.png and heatmap.png into the output
// directory. A previous heatgrid.csv is never read back as input.
func (a *Analyzer) Run() (*Report, error) {
	startTime := time.Now()
	report := &Report{}

	if a.config.Cell < 0 {
		return nil, ErrInvalidCell
	}
	if a.config.Radius < 0 {
		return nil, ErrInvalidRadius
	}

	// Phase 1: Scan files
	scanStart := time.Now()
	files, err := a.scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan files: %w", err)
	}
	for _, file := range files {
		if !scanner.IsSessionFile(file) {
			continue
		}
		report.Files = append(report.Files, file)
	}
	util.LogDebug(fmt.Sprintf("Phase 1 - File scan duration: %v, found %d files", time.Since(scanStart), len(report.Files)))

	// Phase 2: Parse samples
	parseStart := time.Now()
	var samples []model.Sample
	for _, file := range report.Files {
		result, err := a.parser.ParseFile(file)
		if err != nil {
			report.Skipped++
			util.LogWarn(fmt.Sprintf("Failed to parse file %s: %v", file, err))
			continue
		}
		samples = append(samples, result.Samples...)
	}
	util.LogDebug(fmt.Sprintf("Phase 2 - Parse duration: %v, %d samples", time.Since(parseStart), len(samples)))

	if len(samples) == 0 {
		return report, ErrNoSamples
	}

	// Phase 3: Bin
	grid, err := BuildHeatGrid(samples, a.config.Grain, a.config.Border)
	if err != nil {
		return report, err
	}
	report.Grid = grid
	util.LogInfo(fmt.Sprintf("Heat grid %dx%d tiles, highest %d, second best %d",
		grid.Columns(), grid.Rows(), grid.Max, grid.SecondBest))

	// Phase 4: Export
	if err := a.fs.EnsureDirectory(a.config.OutDir); err != nil {
		return report, fmt.Errorf("failed to create output directory: %w", err)
	}

	report.CSVPath = filepath.Join(a.config.OutDir, constants.HeatGridFile)
	if err := writeFile(report.CSVPath, grid.WriteCSV); err != nil {
		return report, err
	}

	report.PNGPath = filepath.Join(a.config.OutDir, HeatGridPNG)
	err = writeFile(report.PNGPath, func(w io.Writer) error {
		return grid.WritePNG(w, a.config.Cell)
	})
	if err != nil {
		return report, err
	}

	// Phase 5: Heat map
	mapStart := time.Now()
	heatMap, err := BuildHeatMap(samples, a.config.Radius, a.config.Border, grid.HeatMapWeight())
	switch {
	case errors.Is(err, ErrHeatMapTooLarge):
		util.LogWarn(fmt.Sprintf("Skipping %s: %v", HeatMapPNG, err))
	case err != nil:
		return report, err
	default:
		report.HeatMap = heatMap
		report.HeatMapPath = filepath.Join(a.config.OutDir, HeatMapPNG)
		if err := writeFile(report.HeatMapPath, heatMap.WritePNG); err != nil {
			return report, err
		}
	}
	util.LogDebug(fmt.Sprintf("Phase 5 - Heat map duration: %v", time.Since(mapStart)))

	util.LogDebug(fmt.Sprintf("Total duration: %v", time.Since(startTime)))
	return report, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

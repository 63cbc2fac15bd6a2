package commands

import (
	"github.com/penwyp/go-path-tracer/internal/analyzer"
	"github.com/penwyp/go-path-tracer/internal/core/pathstore"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/penwyp/go-path-tracer/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var pathsOutput string

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Summarise every recorded path",
	Long:  `Lists each session file with its sample count, entity names, time span and travelled distance.`,
	RunE:  runPaths,
}

func init() {
	rootCmd.AddCommand(pathsCmd)

	pathsCmd.Flags().StringVarP(&pathsOutput, "output", "o", "table",
		"Output format (table, json, csv)")
}

func runPaths(cmd *cobra.Command, args []string) error {
	f, err := formatter.New(pathsOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	store := pathstore.NewStore(appConfig.DataDir, filesystem.NewOS(), pathstore.WithMetrics(collector))
	store.Load()

	if err := f.FormatPaths(analyzer.SummarizePaths(store.Paths())); err != nil {
		return err
	}
	printMetrics(cmd.ErrOrStderr())
	return nil
}

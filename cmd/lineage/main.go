// Command lineage generates a probabilistic family tree from demographic
// tables and reports on the result.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/lineage/internal/demographics"
	"github.com/talgya/lineage/internal/engine"
	"github.com/talgya/lineage/internal/report"
)

var (
	verbose bool
	dataDir string
	dataset string

	seed       int64
	maxPersons int
)

var rootCmd = &cobra.Command{
	Use:   "lineage",
	Short: "Probabilistic family tree generator",
	Long: `lineage synthesizes a multi-generational family tree from two founders
born in 1950, using empirical demographic tables (name frequency, gender
distribution, marriage and birth rates, life expectancy) to decide
partnering, family size, and timing of births through 2120.

Runs are deterministic for a fixed seed and dataset.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a family tree and print the summary report",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := loadTables()
		if err != nil {
			return err
		}

		t, err := engine.New(tables, engine.Config{
			Seed:       seed,
			MaxPersons: maxPersons,
		}).Run()
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		report.Build(t).Render(cmd.OutOrStdout())
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Pack the demographic CSV tables into a sqlite dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dataset == "" {
			return errors.New("import: --dataset is required")
		}
		tables, err := demographics.LoadDir(dataDir)
		if err != nil {
			return err
		}
		if err := demographics.WriteSQLite(tables, dataset); err != nil {
			return err
		}
		slog.Info("dataset packed", "from", dataDir, "to", dataset)
		return nil
	},
}

// loadTables prefers a packed sqlite dataset when one is named, falling
// back to the CSV directory.
func loadTables() (*demographics.Tables, error) {
	if dataset != "" {
		if _, err := os.Stat(dataset); err == nil {
			slog.Debug("loading sqlite dataset", "path", dataset)
			return demographics.LoadSQLite(dataset)
		}
		slog.Warn("dataset not found, falling back to CSV directory", "dataset", dataset, "dir", dataDir)
	}
	slog.Debug("loading CSV tables", "dir", dataDir)
	return demographics.LoadDir(dataDir)
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "data", "directory holding the six demographic CSV files")
	rootCmd.PersistentFlags().StringVar(&dataset, "dataset", "", "packed sqlite dataset path")

	generateCmd.Flags().Int64Var(&seed, "seed", 42, "random seed; same seed, same tree")
	generateCmd.Flags().IntVar(&maxPersons, "max", engine.DefaultMaxPersons, "population safety cap")

	rootCmd.AddCommand(generateCmd, importCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed", "error", err)
		os.Exit(1)
	}
}

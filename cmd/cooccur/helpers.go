package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/cooccur/internal/common"
	"github.com/Veraticus/cooccur/internal/config"
	"github.com/Veraticus/cooccur/internal/dataset"
	"github.com/Veraticus/cooccur/internal/filter"
	"github.com/Veraticus/cooccur/internal/report"
	"github.com/Veraticus/cooccur/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStorage opens the run archive with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/cooccur/runs.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func dataDir() string {
	return config.ExpandPath(viper.GetString("data.dir"))
}

// resolveDataset accepts a file path, or an index, name or stem from the data folder.
func resolveDataset(ref string) (dataset.Dataset, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return dataset.Resolve(nil, ref)
	}

	datasets, err := dataset.Discover(dataDir())
	if err != nil {
		return dataset.Dataset{}, common.NewUserError("No datasets found. Put *_transactions.csv files in "+dataDir(), err)
	}

	ds, err := dataset.Resolve(datasets, ref)
	if err != nil {
		return dataset.Dataset{}, common.NewUserError(fmt.Sprintf("Unknown dataset %q; run 'cooccur datasets' to list them", ref), err)
	}
	return ds, nil
}

// thresholdFlags registers --min-support and --min-confidence.
func thresholdFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min-support", config.DefaultMinSupport, "minimum support in (0, 1]")
	cmd.Flags().Float64("min-confidence", config.DefaultMinConfidence, "minimum confidence in (0, 1]")
}

// loadThresholds starts from configuration and applies any threshold flag given.
func loadThresholds(cmd *cobra.Command) (config.Thresholds, error) {
	t, err := config.LoadThresholds()
	if err != nil {
		return config.Thresholds{}, err
	}

	if cmd.Flags().Changed("min-support") {
		t.MinSupport, _ = cmd.Flags().GetFloat64("min-support")
	}
	if cmd.Flags().Changed("min-confidence") {
		t.MinConfidence, _ = cmd.Flags().GetFloat64("min-confidence")
	}

	if err := t.Validate(); err != nil {
		return config.Thresholds{}, common.NewUserError("Value must be >0 and ≤1.", err)
	}
	return t, nil
}

func thresholdsGiven(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("min-support") || cmd.Flags().Changed("min-confidence")
}

// outputOptions is how a run is presented and where it is kept.
type outputOptions struct {
	filter  *filter.RuleFilter
	format  report.Format
	dir     string
	top     int
	saveCSV bool
	archive bool
}

// outputFlags registers the presentation and persistence flags.
func outputFlags(cmd *cobra.Command, saveCSVDefault bool) {
	cmd.Flags().Int("top", report.DefaultTop, "number of frequent itemsets to show")
	cmd.Flags().StringP("format", "f", string(report.FormatTable), "output format (table, json, yaml)")
	cmd.Flags().String("where", "", "CEL expression selecting the rules to show, e.g. 'lift > 1.2'")
	cmd.Flags().Bool("save-csv", saveCSVDefault, "write itemsets and rules as CSV under the output folder")
	cmd.Flags().Bool("archive", false, "store the finished run in the local archive")
}

func loadOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	opts := outputOptions{
		top:    viper.GetInt("output.top"),
		dir:    config.ExpandPath(viper.GetString("output.dir")),
		format: report.Format(viper.GetString("output.format")),
	}

	if cmd.Flags().Changed("top") {
		opts.top, _ = cmd.Flags().GetInt("top")
	}

	rawFormat := viper.GetString("output.format")
	if cmd.Flags().Changed("format") {
		rawFormat, _ = cmd.Flags().GetString("format")
	}
	format, err := report.ParseFormat(rawFormat)
	if err != nil {
		return outputOptions{}, err
	}
	opts.format = format

	where, _ := cmd.Flags().GetString("where")
	opts.filter, err = filter.Compile(where)
	if err != nil {
		return outputOptions{}, common.NewUserError("Invalid --where expression", err)
	}

	opts.saveCSV, _ = cmd.Flags().GetBool("save-csv")
	opts.archive, _ = cmd.Flags().GetBool("archive")

	return opts, nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/cooccur/internal/cli"
	"github.com/Veraticus/cooccur/internal/common"
	"github.com/Veraticus/cooccur/internal/config"
	"github.com/Veraticus/cooccur/internal/dataset"
	"github.com/Veraticus/cooccur/internal/mining"
	"github.com/Veraticus/cooccur/internal/tui"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [dataset]",
		Short: "Run brute force, Apriori and FP-Growth side by side",
		Long: `Mine one dataset with every algorithm, print each one's frequent itemsets
and strongest rule, time them, and check Apriori and FP-Growth against the
brute-force result. Results are saved as CSV under the output folder.

Without a dataset or thresholds, an interactive picker asks for them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompare,
	}

	cmd.Flags().Bool("progress", false, "show per-level progress bars")
	thresholdFlags(cmd)
	outputFlags(cmd, true)

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	output, err := loadOutputOptions(cmd)
	if err != nil {
		return err
	}

	var (
		ds         dataset.Dataset
		thresholds config.Thresholds
	)

	if len(args) == 0 && !thresholdsGiven(cmd) {
		ds, thresholds, err = pickInteractively(cmd)
		if errors.Is(err, tui.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Selection cancelled."))
			return nil
		}
		if err != nil {
			return err
		}
	} else {
		if len(args) == 0 {
			return common.NewUserError("Name a dataset when passing thresholds", nil)
		}
		if thresholds, err = loadThresholds(cmd); err != nil {
			return err
		}
		if ds, err = resolveDataset(args[0]); err != nil {
			return err
		}
	}

	return executeRun(cmd.Context(), cmd, runRequest{
		dataset:    ds,
		miners:     mining.All(observerFor(cmd)),
		thresholds: thresholds,
		output:     output,
	})
}

func pickInteractively(cmd *cobra.Command) (dataset.Dataset, config.Thresholds, error) {
	datasets, err := dataset.Discover(dataDir())
	if err != nil {
		return dataset.Dataset{}, config.Thresholds{}, common.NewUserError("No datasets found. Put *_transactions.csv files in "+dataDir(), err)
	}

	sel, err := tui.RunPicker(cmd.Context(), datasets, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return dataset.Dataset{}, config.Thresholds{}, err
	}

	return sel.Dataset, config.Thresholds{
		MinSupport:    sel.MinSupport,
		MinConfidence: sel.MinConfidence,
	}, nil
}

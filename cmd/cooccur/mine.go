package main

import (
	"github.com/Veraticus/cooccur/internal/common"
	"github.com/Veraticus/cooccur/internal/mining"
	"github.com/Veraticus/cooccur/internal/model"
	"github.com/spf13/cobra"
)

func mineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine <dataset>",
		Short: "Mine frequent itemsets and rules with one algorithm",
		Long: `Mine frequent itemsets and association rules from one dataset.

The dataset may be a file path, or the number, name or file stem shown by
'cooccur datasets'.`,
		Example: `  cooccur mine grocery --min-support 0.3 --min-confidence 0.7
  cooccur mine 2 --algorithm fpgrowth --format json
  cooccur mine ./statement.ofx --where 'lift > 1.5' --archive`,
		Args: cobra.ExactArgs(1),
		RunE: runMine,
	}

	cmd.Flags().StringP("algorithm", "a", string(model.AlgorithmBruteForce), "mining algorithm (bruteforce, apriori, fpgrowth)")
	cmd.Flags().Bool("progress", false, "show per-level progress bars")
	thresholdFlags(cmd)
	outputFlags(cmd, false)

	return cmd
}

func runMine(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("algorithm")
	algorithm, err := model.ParseAlgorithm(name)
	if err != nil {
		return common.NewUserError("Unknown algorithm; choose bruteforce, apriori or fpgrowth", err)
	}

	thresholds, err := loadThresholds(cmd)
	if err != nil {
		return err
	}

	output, err := loadOutputOptions(cmd)
	if err != nil {
		return err
	}

	ds, err := resolveDataset(args[0])
	if err != nil {
		return err
	}

	miner, err := mining.New(algorithm, observerFor(cmd))
	if err != nil {
		return err
	}

	return executeRun(cmd.Context(), cmd, runRequest{
		dataset:    ds,
		miners:     []mining.Miner{miner},
		thresholds: thresholds,
		output:     output,
	})
}

package main

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/cooccur/internal/cli"
	"github.com/Veraticus/cooccur/internal/common"
	"github.com/Veraticus/cooccur/internal/model"
	"github.com/Veraticus/cooccur/internal/report"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse archived mining runs",
		Long:  `List, show and delete runs stored with --archive.`,
	}

	// Subcommands
	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyDeleteCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.HistoryTable(runs))
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of runs to list (0 for all)")
	return cmd
}

func historyShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the itemsets and rules of an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRunID(args[0])
			if err != nil {
				return err
			}

			rawFormat, _ := cmd.Flags().GetString("format")
			format, err := report.ParseFormat(rawFormat)
			if err != nil {
				return err
			}
			top, _ := cmd.Flags().GetInt("top")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			run, err := store.GetRun(cmd.Context(), id)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("No archived run #%d", id), err)
			}

			if format != report.FormatTable {
				return report.WriteDocument(cmd.OutOrStdout(), format, report.RunDocument(run))
			}
			printRun(cmd, run, top)
			return nil
		},
	}
	cmd.Flags().Int("top", report.DefaultTop, "number of itemsets and rules to show")
	cmd.Flags().StringP("format", "f", string(report.FormatTable), "output format (table, json, yaml)")
	return cmd
}

func printRun(cmd *cobra.Command, run *model.Run, top int) {
	out := cmd.OutOrStdout()
	summary := fmt.Sprintf("Parameters → min_support = %v, min_confidence = %v\n%d transactions, archived %s",
		run.MinSupport, run.MinConfidence, run.TransactionCount, run.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintln(out, cli.RenderBox(fmt.Sprintf("%s Run #%d: %s (%s)", cli.ChartIcon, run.ID, run.Dataset, run.Algorithm.DisplayName()), summary))
	fmt.Fprintln(out)

	itemsets := run.Itemsets
	if top > 0 && len(itemsets) > top {
		itemsets = itemsets[:top]
	}
	fmt.Fprintln(out, report.ItemsetTable(itemsets))
	fmt.Fprintln(out)
	fmt.Fprintln(out, report.RulesTable(run.Rules.TopN(top)))
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRunID(args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteRun(cmd.Context(), id); err != nil {
				return common.NewUserError(fmt.Sprintf("No archived run #%d", id), err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted run #%d", id)))
			return nil
		},
	}
}

func parseRunID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("Run id must be a positive number, got %q", s), err)
	}
	return id, nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/cooccur/internal/cli"
	"github.com/Veraticus/cooccur/internal/common"
	"github.com/Veraticus/cooccur/internal/config"
	"github.com/Veraticus/cooccur/internal/sheets"
	"github.com/Veraticus/cooccur/internal/storage"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <run-id>",
		Short: "Export an archived run to Google Sheets",
		Long: `Write the frequent itemsets and association rules of an archived run to the
"Frequent Itemsets" and "Association Rules" tabs of a Google spreadsheet.

Credentials come from sheets.* in the config file or the GOOGLE_SHEETS_*
environment variables: either a service account key file, or an OAuth client
id, secret and refresh token.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRunID(args[0])
			if err != nil {
				return err
			}

			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return common.NewUserError("Google Sheets is not configured", err)
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			writer, err := sheets.NewWriter(cmd.Context(), *sheetsConfig, slog.Default())
			if err != nil {
				return fmt.Errorf("%w: %w", common.ErrExportFailed, err)
			}

			if err := exportRun(cmd.Context(), store, writer, id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported run #%d to Google Sheets", id)))
			return nil
		},
	}
}

// exportRun loads run id from the archive and hands it to w.
func exportRun(ctx context.Context, archive storage.RunArchive, w sheets.RunWriter, id int64) error {
	run, err := archive.GetRun(ctx, id)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("No archived run #%d", id), err)
	}

	if err := w.Write(ctx, run); err != nil {
		common.LogError(err, "Sheets export failed", common.Fields{"run_id": id, "dataset": run.Dataset})
		return fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}
	return nil
}

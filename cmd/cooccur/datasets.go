package main

import (
	"fmt"
	"path/filepath"

	"github.com/Veraticus/cooccur/internal/cli"
	"github.com/Veraticus/cooccur/internal/common"
	"github.com/Veraticus/cooccur/internal/dataset"
	"github.com/spf13/cobra"
)

func datasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the datasets in the data folder",
		Long:  `List the *_transactions.csv, .ofx and .qfx files in the data folder with the numbers and names other commands accept.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			datasets, err := dataset.Discover(dataDir())
			if err != nil {
				return common.NewUserError("No datasets found. Put *_transactions.csv files in "+dataDir(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Available datasets"))
			for i, d := range datasets {
				fmt.Fprintf(out, "%d. %s %s\n", i+1, d.Name, cli.SubtleStyle.Render("("+filepath.Base(d.Path)+")"))
			}
			return nil
		},
	}
}

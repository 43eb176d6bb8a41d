package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/cooccur/internal/cli"
	"github.com/Veraticus/cooccur/internal/common"
	"github.com/Veraticus/cooccur/internal/compare"
	"github.com/Veraticus/cooccur/internal/config"
	"github.com/Veraticus/cooccur/internal/dataset"
	"github.com/Veraticus/cooccur/internal/mining"
	"github.com/Veraticus/cooccur/internal/model"
	"github.com/Veraticus/cooccur/internal/report"
	"github.com/spf13/cobra"
)

// runRequest is one mine or compare invocation after flags are resolved.
type runRequest struct {
	dataset    dataset.Dataset
	miners     []mining.Miner
	output     outputOptions
	thresholds config.Thresholds
}

// executeRun loads the dataset, runs every miner, prints the results and
// persists them as requested.
func executeRun(ctx context.Context, cmd *cobra.Command, req runRequest) error {
	out := cmd.OutOrStdout()

	// Keep stdout parseable for json and yaml.
	notices := out
	if req.output.format != report.FormatTable {
		notices = cmd.ErrOrStderr()
	}

	txns, err := dataset.Load(ctx, req.dataset.Path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", req.dataset.Name, err)
	}

	common.LogInfo("Dataset loaded", common.Fields{
		"dataset":      req.dataset.Name,
		"path":         req.dataset.Path,
		"transactions": len(txns),
	})
	fmt.Fprintln(notices, cli.FormatInfo(fmt.Sprintf("Using dataset: %s (%d transactions)", req.dataset.Name, len(txns))))

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx = handler.HandleInterrupts(ctx)
	defer handler.Stop()

	rep, err := compare.Run(ctx, compare.Input{
		Dataset:       req.dataset.Name,
		Transactions:  txns,
		MinSupport:    req.thresholds.MinSupport,
		MinConfidence: req.thresholds.MinConfidence,
	}, req.miners...)
	if err != nil {
		return err
	}

	var runIDs []int64
	if req.output.archive {
		runIDs, err = archiveReport(ctx, rep, req.dataset)
		if err != nil {
			return err
		}
	}

	if err := present(out, rep, req.output, runIDs); err != nil {
		return err
	}

	if req.output.saveCSV {
		for _, res := range rep.Results {
			dir := report.OutputDir(req.output.dir, req.dataset.Stem(), res.Algorithm)
			paths, err := report.SaveCSV(dir, res.Table.Entries(), res.Rules)
			if err != nil {
				return err
			}
			fmt.Fprintln(notices, cli.FormatSuccess(fmt.Sprintf("%s %s results saved: %s", cli.FolderIcon, res.Algorithm.DisplayName(), strings.Join(paths, ", "))))
		}
	}

	for i, id := range runIDs {
		fmt.Fprintln(notices, cli.FormatSuccess(fmt.Sprintf("Archived %s run #%d", rep.Results[i].Algorithm.DisplayName(), id)))
	}

	return nil
}

func present(w io.Writer, rep *compare.Report, opts outputOptions, runIDs []int64) error {
	if opts.format == report.FormatTable {
		return report.NewPrinter(w, opts.top, opts.filter).PrintReport(rep)
	}

	doc, err := report.NewDocument(rep, opts.top, opts.filter)
	if err != nil {
		return err
	}
	if len(runIDs) == 1 {
		doc.RunID = runIDs[0]
	}
	return report.WriteDocument(w, opts.format, doc)
}

// archiveReport stores every strategy's unfiltered result and returns the run ids in order.
func archiveReport(ctx context.Context, rep *compare.Report, ds dataset.Dataset) ([]int64, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open run archive: %w", err)
	}
	defer func() { _ = store.Close() }()

	ids := make([]int64, 0, len(rep.Results))
	for _, res := range rep.Results {
		run := model.NewRun(ds.Name, ds.Path, res.Algorithm, rep.MinSupport, rep.MinConfidence, res.Table, res.Rules)
		run.MineDuration = res.MineDuration
		run.RuleDuration = res.RuleDuration

		id, err := store.SaveRun(ctx, run)
		if err != nil {
			return nil, fmt.Errorf("failed to archive %s run: %w", res.Algorithm, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// observerFor returns a progress observer when --progress is set.
func observerFor(cmd *cobra.Command) mining.Observer {
	if show, _ := cmd.Flags().GetBool("progress"); show {
		return cli.NewProgressObserver(cmd.ErrOrStderr())
	}
	return nil
}

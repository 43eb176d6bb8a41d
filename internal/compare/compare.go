// Package compare runs several mining strategies over the same baskets and
// checks them against the brute-force result.
package compare

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/cooccur/internal/mining"
	"github.com/Veraticus/cooccur/internal/model"
)

// Hints printed when a comparison finds nothing.
const (
	HintNoItemsets = "No frequent itemsets at your support. Try a smaller support (e.g., 0.05)."
	HintNoRules    = "No association rules at your thresholds. Lower support/confidence or strengthen repeated bundles."
)

// ErrNoMiners is returned when Run is called without strategies.
var ErrNoMiners = errors.New("no mining strategies given")

// Input is the shared workload of a comparison.
type Input struct {
	Dataset       string
	Transactions  []model.Transaction
	MinSupport    float64
	MinConfidence float64
}

// Result is what one strategy produced.
type Result struct {
	Table        *model.FrequentItemsetTable
	Algorithm    model.Algorithm
	Rules        model.Rules
	Stats        mining.RuleStats
	MineDuration time.Duration
	RuleDuration time.Duration
}

// Report collects every strategy's result in run order.
type Report struct {
	Dataset       string
	Results       []Result
	MinSupport    float64
	MinConfidence float64
	Transactions  int
}

// Run mines in with each miner in turn and generates rules from each table.
func Run(ctx context.Context, in Input, miners ...mining.Miner) (*Report, error) {
	if len(miners) == 0 {
		return nil, ErrNoMiners
	}

	report := &Report{
		Dataset:       in.Dataset,
		MinSupport:    in.MinSupport,
		MinConfidence: in.MinConfidence,
		Transactions:  len(in.Transactions),
		Results:       make([]Result, 0, len(miners)),
	}

	for _, m := range miners {
		res, err := RunOne(ctx, m, in)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, res)
	}

	return report, nil
}

// RunOne mines with a single strategy and times both phases.
func RunOne(ctx context.Context, m mining.Miner, in Input) (Result, error) {
	start := time.Now()
	table, err := m.Mine(ctx, in.Transactions, in.MinSupport)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", m.Name().DisplayName(), err)
	}
	mined := time.Since(start)

	start = time.Now()
	rules, stats, err := mining.GenerateRules(table, in.MinConfidence)
	if err != nil {
		return Result{}, fmt.Errorf("%s rules: %w", m.Name().DisplayName(), err)
	}
	ruled := time.Since(start)

	slog.Info("Strategy finished",
		"algorithm", m.Name(),
		"itemsets", table.Len(),
		"largest_itemset", table.MaxSize(),
		"rules", len(rules),
		"mine_duration", mined,
		"rule_duration", ruled)

	return Result{
		Algorithm:    m.Name(),
		Table:        table,
		Rules:        rules,
		Stats:        stats,
		MineDuration: mined,
		RuleDuration: ruled,
	}, nil
}

// Result returns the result of algorithm, if it ran.
func (r *Report) Result(algorithm model.Algorithm) (Result, bool) {
	for _, res := range r.Results {
		if res.Algorithm == algorithm {
			return res, true
		}
	}
	return Result{}, false
}

// Hint explains an empty outcome, or returns "" when something was found.
func (r *Report) Hint() string {
	anyItemsets, anyRules := false, false
	for _, res := range r.Results {
		if res.Table.Len() > 0 {
			anyItemsets = true
		}
		if len(res.Rules) > 0 {
			anyRules = true
		}
	}

	switch {
	case !anyItemsets:
		return HintNoItemsets
	case !anyRules:
		return HintNoRules
	default:
		return ""
	}
}

// Agreements compares every non-oracle result with the brute-force one.
// It returns nil when brute force did not run.
func (r *Report) Agreements() map[model.Algorithm]Diff {
	oracle, ok := r.Result(model.AlgorithmBruteForce)
	if !ok {
		return nil
	}

	out := make(map[model.Algorithm]Diff, len(r.Results)-1)
	for _, res := range r.Results {
		if res.Algorithm == model.AlgorithmBruteForce {
			continue
		}
		out[res.Algorithm] = Agreement(oracle.Table, res.Table)
	}
	return out
}

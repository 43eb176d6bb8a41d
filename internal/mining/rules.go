package mining

import (
	"log/slog"

	"github.com/Veraticus/cooccur/internal/model"
)

// RuleStats summarizes a rule generation pass.
type RuleStats struct {
	Candidates int // Antecedent/consequent splits examined
	Emitted    int // Splits that met the confidence threshold
	// MissingSubsetSupport counts splits skipped because the antecedent was not in
	// the table. A correct miner never produces such a table.
	MissingSubsetSupport int
	// InconsistentSupport counts splits skipped because the antecedent's support was
	// below the parent itemset's, which would give a confidence above one.
	InconsistentSupport int
}

// Skipped returns the number of splits dropped by defensive checks.
func (s RuleStats) Skipped() int {
	return s.MissingSubsetSupport + s.InconsistentSupport
}

// GenerateRules derives every rule X → L−X from the frequent itemsets L of size two
// or more whose confidence support(L)/support(X) meets minConfidence. Rules are
// returned sorted by confidence, then support, descending, with antecedent and
// consequent labels as final tie-breaks. An empty table yields no rules.
func GenerateRules(table *model.FrequentItemsetTable, minConfidence float64) (model.Rules, RuleStats, error) {
	var stats RuleStats
	if err := validateThreshold("min confidence", minConfidence); err != nil {
		return nil, stats, err
	}

	rules := model.Rules{}
	for _, parent := range table.Entries() {
		if parent.Itemset.Len() < 2 {
			continue
		}

		items := parent.Itemset.Items()
		for size := 1; size < len(items); size++ {
			forEachCombination(len(items), size, func(idx []int) bool {
				stats.Candidates++

				labels := make([]string, len(idx))
				for i, j := range idx {
					labels[i] = items[j]
				}
				antecedent := model.NewItemset(labels...)

				antecedentSupport, ok := table.Support(antecedent)
				if !ok || antecedentSupport <= 0 {
					stats.MissingSubsetSupport++
					slog.Debug("Skipping rule candidate",
						"reason", "missing_subset_support",
						"itemset", parent.Itemset.String(),
						"missing_subset", antecedent.String())
					return true
				}

				confidence := parent.Support / antecedentSupport
				if confidence > 1 {
					stats.InconsistentSupport++
					slog.Debug("Skipping rule candidate",
						"reason", "inconsistent_support",
						"itemset", parent.Itemset.String(),
						"antecedent", antecedent.String())
					return true
				}
				if confidence < minConfidence {
					return true
				}

				consequent := parent.Itemset.Minus(antecedent)
				rule := model.Rule{
					Antecedent: antecedent,
					Consequent: consequent,
					Support:    parent.Support,
					Confidence: confidence,
				}
				if consequentSupport, ok := table.Support(consequent); ok && consequentSupport > 0 {
					rule.Lift = confidence / consequentSupport
				}

				rules = append(rules, rule)
				stats.Emitted++
				return true
			})
		}
	}

	rules.Sort()

	if stats.Skipped() > 0 {
		slog.Warn("Rule generation skipped candidates with unusable subset support",
			"missing_subset_support", stats.MissingSubsetSupport,
			"inconsistent_support", stats.InconsistentSupport)
	}

	return rules, stats, nil
}

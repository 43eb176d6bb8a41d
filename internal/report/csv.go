package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/cooccur/internal/model"
)

// File names written per strategy.
const (
	ItemsetsFile = "frequent_itemsets.csv"
	RulesFile    = "association_rules.csv"
)

// OutputDir is <base>/<dataset stem>/<algorithm>.
func OutputDir(base, stem string, algorithm model.Algorithm) string {
	return filepath.Join(base, stem, string(algorithm))
}

// SaveCSV writes the itemsets and rules of one strategy into dir, creating it
// as needed, and returns the written paths. Empty inputs still produce files
// with a header row.
func SaveCSV(dir string, itemsets []model.FrequentItemset, rules model.Rules) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	itemsetRows := make([][]string, 0, len(itemsets)+1)
	itemsetRows = append(itemsetRows, []string{"itemset", "support"})
	for _, fi := range itemsets {
		itemsetRows = append(itemsetRows, []string{fi.Itemset.String(), formatFloat(fi.Support)})
	}

	ruleRows := make([][]string, 0, len(rules)+1)
	ruleRows = append(ruleRows, []string{"antecedent", "consequent", "support", "confidence", "lift"})
	for _, r := range rules {
		ruleRows = append(ruleRows, []string{
			r.Antecedent.String(),
			r.Consequent.String(),
			formatFloat(r.Support),
			formatFloat(r.Confidence),
			formatFloat(r.Lift),
		})
	}

	paths := []string{filepath.Join(dir, ItemsetsFile), filepath.Join(dir, RulesFile)}
	for i, rows := range [][][]string{itemsetRows, ruleRows} {
		if err := writeCSV(paths[i], rows); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func writeCSV(path string, rows [][]string) (err error) {
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

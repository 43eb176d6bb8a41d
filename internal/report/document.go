package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/cooccur/internal/compare"
	"github.com/Veraticus/cooccur/internal/filter"
	"github.com/Veraticus/cooccur/internal/model"
	"gopkg.in/yaml.v3"
)

// Format selects how results are written to stdout.
type Format string

// Output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// ItemsetEntry is one frequent itemset in a document.
type ItemsetEntry struct {
	Items   []string `json:"items" yaml:"items"`
	Support float64  `json:"support" yaml:"support"`
}

// RuleEntry is one association rule in a document.
type RuleEntry struct {
	Antecedent []string `json:"antecedent" yaml:"antecedent"`
	Consequent []string `json:"consequent" yaml:"consequent"`
	Support    float64  `json:"support" yaml:"support"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Lift       float64  `json:"lift" yaml:"lift"`
}

// ResultEntry is one strategy's output in a document.
type ResultEntry struct {
	Algorithm     string         `json:"algorithm" yaml:"algorithm"`
	Agreement     string         `json:"agreement,omitempty" yaml:"agreement,omitempty"`
	Itemsets       []ItemsetEntry `json:"itemsets" yaml:"itemsets"`
	Rules          []RuleEntry    `json:"rules" yaml:"rules"`
	MineMillis     float64        `json:"mine_ms" yaml:"mine_ms"`
	RuleMillis     float64        `json:"rules_ms" yaml:"rules_ms"`
	SkippedRules   int            `json:"skipped_rules" yaml:"skipped_rules"`
	LargestItemset int            `json:"largest_itemset" yaml:"largest_itemset"`
	TotalItemsets  int            `json:"total_itemsets" yaml:"total_itemsets"`
	TotalRules     int            `json:"total_rules" yaml:"total_rules"`
}

// Document is the machine-readable form of a mining or comparison run.
type Document struct {
	Dataset       string        `json:"dataset" yaml:"dataset"`
	Hint          string        `json:"hint,omitempty" yaml:"hint,omitempty"`
	Results       []ResultEntry `json:"results" yaml:"results"`
	MinSupport    float64       `json:"min_support" yaml:"min_support"`
	MinConfidence float64       `json:"min_confidence" yaml:"min_confidence"`
	Transactions  int           `json:"transactions" yaml:"transactions"`
	RunID         int64         `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

// NewDocument converts a report, keeping the top itemsets and the rules f accepts.
func NewDocument(r *compare.Report, top int, f *filter.RuleFilter) (Document, error) {
	doc := Document{
		Dataset:       r.Dataset,
		MinSupport:    r.MinSupport,
		MinConfidence: r.MinConfidence,
		Transactions:  r.Transactions,
		Hint:          r.Hint(),
		Results:       make([]ResultEntry, 0, len(r.Results)),
	}

	agreements := r.Agreements()
	for _, res := range r.Results {
		rules, err := f.Apply(res.Rules)
		if err != nil {
			return Document{}, err
		}

		entry := resultEntry(res.Algorithm, res.Table.TopN(top), rules)
		entry.TotalItemsets = res.Table.Len()
		entry.LargestItemset = res.Table.MaxSize()
		entry.TotalRules = len(res.Rules)
		entry.SkippedRules = res.Stats.Skipped()
		entry.MineMillis = millis(res.MineDuration.Seconds())
		entry.RuleMillis = millis(res.RuleDuration.Seconds())
		if d, ok := agreements[res.Algorithm]; ok {
			entry.Agreement = d.String()
		}
		doc.Results = append(doc.Results, entry)
	}

	return doc, nil
}

// RunDocument converts an archived run.
func RunDocument(run *model.Run) Document {
	entry := resultEntry(run.Algorithm, run.Itemsets, run.Rules)
	entry.TotalItemsets = len(run.Itemsets)
	for _, fi := range run.Itemsets {
		entry.LargestItemset = max(entry.LargestItemset, fi.Len())
	}
	entry.TotalRules = len(run.Rules)
	entry.MineMillis = millis(run.MineDuration.Seconds())
	entry.RuleMillis = millis(run.RuleDuration.Seconds())

	return Document{
		RunID:         run.ID,
		Dataset:       run.Dataset,
		MinSupport:    run.MinSupport,
		MinConfidence: run.MinConfidence,
		Transactions:  run.TransactionCount,
		Results:       []ResultEntry{entry},
	}
}

func resultEntry(algorithm model.Algorithm, itemsets []model.FrequentItemset, rules model.Rules) ResultEntry {
	entry := ResultEntry{
		Algorithm: string(algorithm),
		Itemsets:  make([]ItemsetEntry, 0, len(itemsets)),
		Rules:     make([]RuleEntry, 0, len(rules)),
	}
	for _, fi := range itemsets {
		entry.Itemsets = append(entry.Itemsets, ItemsetEntry{Items: fi.Items(), Support: fi.Support})
	}
	for _, r := range rules {
		entry.Rules = append(entry.Rules, RuleEntry{
			Antecedent: r.Antecedent.Items(),
			Consequent: r.Consequent.Items(),
			Support:    r.Support,
			Confidence: r.Confidence,
			Lift:       r.Lift,
		})
	}
	return entry
}

func millis(seconds float64) float64 {
	return seconds * 1000
}

// WriteDocument encodes doc as JSON or YAML.
func WriteDocument(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not a document format", format)
	}
}

package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/Veraticus/cooccur/internal/compare"
	"github.com/Veraticus/cooccur/internal/filter"
	"github.com/Veraticus/cooccur/internal/mining"
	"github.com/Veraticus/cooccur/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func groceryReport(t *testing.T, minSupport float64) *compare.Report {
	t.Helper()
	baskets := [][]string{{"A", "B"}, {"A", "B", "C"}, {"A"}, {"B", "C"}}
	txns := make([]model.Transaction, len(baskets))
	for i, b := range baskets {
		txns[i] = model.NewTransaction(strconv.Itoa(i+1), b...)
	}

	r, err := compare.Run(context.Background(), compare.Input{
		Dataset:       "Grocery",
		Transactions:  txns,
		MinSupport:    minSupport,
		MinConfidence: 0.6,
	}, mining.All(nil)...)
	require.NoError(t, err)
	return r
}

func TestRuleLine(t *testing.T) {
	r := groceryReport(t, 0.5)
	oracle, _ := r.Result(model.AlgorithmBruteForce)

	assert.Equal(t, "Rule 1: [{'C'}, {'B'}, 1]", RuleLine(oracle.Rules))
	assert.Equal(t, NoRulesMessage, RuleLine(nil))
}

func TestItemsetTable(t *testing.T) {
	assert.Equal(t, NoItemsetsMessage, ItemsetTable(nil))

	out := ItemsetTable([]model.FrequentItemset{
		{Itemset: model.NewItemset("A", "B"), Support: 0.5},
	})
	assert.Contains(t, out, "itemset")
	assert.Contains(t, out, "{'A', 'B'}")
	assert.Contains(t, out, "0.5")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, 3, nil).PrintReport(groceryReport(t, 0.5)))

	out := buf.String()
	assert.Contains(t, out, "Parameters → min_support = 0.5, min_confidence = 0.6")
	for _, name := range []string{"Brute Force", "Apriori", "FP-Growth"} {
		assert.Contains(t, out, "== "+name+" Frequent Itemsets ==")
		assert.Contains(t, out, "== "+name+" Association Rule ==")
	}
	assert.Contains(t, out, "Rule 1: [{'C'}, {'B'}, 1]")
	assert.Contains(t, out, "Apriori agrees with brute force")
	assert.Contains(t, out, "FP-Growth agrees with brute force")
	assert.NotContains(t, out, "[Hint]")
}

func TestPrintReportHint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, 0, nil).PrintReport(groceryReport(t, 1)))

	out := buf.String()
	assert.Contains(t, out, NoItemsetsMessage)
	assert.Contains(t, out, "[Hint] "+compare.HintNoItemsets)
}

func TestPrintResultWithFilter(t *testing.T) {
	f, err := filter.Compile(`"A" in antecedent`)
	require.NoError(t, err)

	r := groceryReport(t, 0.5)
	oracle, _ := r.Result(model.AlgorithmBruteForce)

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, 5, f).PrintResult(oracle))
	assert.Contains(t, buf.String(), "Rule 1: [{'A'}, {'B'}, 0.6666666666666666]")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "JSON": FormatJSON, "yml": FormatYAML, "table": FormatTable} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDocumentRoundTrip(t *testing.T) {
	doc, err := NewDocument(groceryReport(t, 0.5), 2, nil)
	require.NoError(t, err)

	require.Len(t, doc.Results, 3)
	first := doc.Results[0]
	assert.Equal(t, "bruteforce", first.Algorithm)
	assert.Len(t, first.Itemsets, 2)
	assert.Equal(t, 5, first.TotalItemsets)
	assert.Equal(t, 2, first.LargestItemset)
	assert.Equal(t, 4, first.TotalRules)
	assert.Empty(t, first.Agreement)
	assert.Equal(t, "agrees with brute force", doc.Results[1].Agreement)

	var jsonBuf bytes.Buffer
	require.NoError(t, WriteDocument(&jsonBuf, FormatJSON, doc))
	var fromJSON Document
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	assert.Equal(t, doc, fromJSON)

	var yamlBuf bytes.Buffer
	require.NoError(t, WriteDocument(&yamlBuf, FormatYAML, doc))
	assert.Contains(t, yamlBuf.String(), "dataset: Grocery")
	var fromYAML Document
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))
	assert.Equal(t, doc.Results[0].Rules, fromYAML.Results[0].Rules)

	assert.Error(t, WriteDocument(&jsonBuf, FormatTable, doc))
}

func TestRunDocument(t *testing.T) {
	run := &model.Run{
		ID:               3,
		Dataset:          "Grocery",
		Algorithm:        model.AlgorithmFPGrowth,
		TransactionCount: 4,
		Itemsets: []model.FrequentItemset{
			{Itemset: model.NewItemset("A"), Support: 0.75},
			{Itemset: model.NewItemset("A", "B"), Support: 0.5},
		},
	}

	doc := RunDocument(run)
	assert.Equal(t, int64(3), doc.RunID)
	require.Len(t, doc.Results, 1)
	assert.Equal(t, "fpgrowth", doc.Results[0].Algorithm)
	assert.Equal(t, []ItemsetEntry{
		{Items: []string{"A"}, Support: 0.75},
		{Items: []string{"A", "B"}, Support: 0.5},
	}, doc.Results[0].Itemsets)
	assert.Equal(t, 2, doc.Results[0].LargestItemset)
	assert.Equal(t, 2, doc.Results[0].TotalItemsets)
	assert.Empty(t, doc.Results[0].Rules)
}

func TestSaveCSV(t *testing.T) {
	r := groceryReport(t, 0.5)
	oracle, _ := r.Result(model.AlgorithmBruteForce)

	dir := OutputDir(t.TempDir(), "grocery_transactions", oracle.Algorithm)
	paths, err := SaveCSV(dir, oracle.Table.Entries(), oracle.Rules)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, ItemsetsFile), paths[0])
	assert.Equal(t, "bruteforce", filepath.Base(dir))

	itemsets := readCSV(t, paths[0])
	require.Len(t, itemsets, 6)
	assert.Equal(t, []string{"itemset", "support"}, itemsets[0])
	assert.Equal(t, []string{"{'A'}", "0.75"}, itemsets[1])

	rules := readCSV(t, paths[1])
	require.Len(t, rules, 5)
	assert.Equal(t, []string{"{'C'}", "{'B'}", "0.5", "1", "1.3333333333333333"}, rules[1])
}

func TestSaveCSVEmpty(t *testing.T) {
	paths, err := SaveCSV(t.TempDir(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, readCSV(t, paths[1]), 1)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestHistoryTable(t *testing.T) {
	assert.Equal(t, "(no archived runs)", HistoryTable(nil))

	out := HistoryTable([]model.RunSummary{{
		ID:               7,
		Dataset:          "Grocery",
		Algorithm:        model.AlgorithmFPGrowth,
		MinSupport:       0.5,
		MinConfidence:    0.6,
		TransactionCount: 4,
		ItemsetCount:     5,
		RuleCount:        4,
	}})
	assert.Contains(t, out, "Grocery")
	assert.Contains(t, out, "FP-Growth")
	assert.Contains(t, out, "0.5")
}

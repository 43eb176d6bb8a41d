package mining

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cooccur/internal/model"
)

func TestGenerateRules_Scenario(t *testing.T) {
	table, err := (&BruteForce{}).Mine(context.Background(), scenarioOne(), 0.5)
	require.NoError(t, err)

	rules, stats, err := GenerateRules(table, 0.6)
	require.NoError(t, err)

	var got []string
	for _, r := range rules {
		got = append(got, r.Antecedent.String()+" -> "+r.Consequent.String())
	}
	// C→B has confidence 1. The three 2/3 rules tie on confidence and support and
	// fall back to antecedent order.
	assert.Equal(t, []string{
		"{'C'} -> {'B'}",
		"{'A'} -> {'B'}",
		"{'B'} -> {'A'}",
		"{'B'} -> {'C'}",
	}, got)

	assert.InDelta(t, 1.0, rules[0].Confidence, 1e-12)
	assert.InDelta(t, 0.5/0.75, rules[1].Confidence, 1e-12)
	assert.InDelta(t, 0.5, rules[1].Support, 1e-12)
	assert.InDelta(t, (0.5/0.75)/0.75, rules[1].Lift, 1e-12)

	assert.Equal(t, 4, stats.Candidates)
	assert.Equal(t, 4, stats.Emitted)
	assert.Zero(t, stats.Skipped())
}

func TestGenerateRules_Invariants(t *testing.T) {
	transactions := randomTransactions(21, 80, 7, 0.5)
	table, err := (&BruteForce{}).Mine(context.Background(), transactions, 0.15)
	require.NoError(t, err)

	const minConfidence = 0.4
	rules, stats, err := GenerateRules(table, minConfidence)
	require.NoError(t, err)
	require.NotEmpty(t, rules)
	assert.Zero(t, stats.Skipped())

	for i, r := range rules {
		require.NoError(t, r.Validate())
		assert.Greater(t, r.Confidence, 0.0)
		assert.LessOrEqual(t, r.Confidence, 1.0)
		assert.GreaterOrEqual(t, r.Confidence, minConfidence)

		parentSupport, ok := table.Support(r.Itemset())
		require.True(t, ok, "parent of %s must be frequent", r)
		assert.Equal(t, parentSupport, r.Support)
		assert.Equal(t, r.Itemset().Len(), r.Antecedent.Len()+r.Consequent.Len())

		if i > 0 {
			assert.False(t, model.Rules{r, rules[i-1]}.Less(0, 1), "rules out of order at %d", i)
		}
	}
}

func TestGenerateRules_EmptyTable(t *testing.T) {
	empty, err := model.NewFrequentItemsetTable(3, nil)
	require.NoError(t, err)

	rules, stats, err := GenerateRules(empty, 0.5)
	require.NoError(t, err)
	assert.NotNil(t, rules)
	assert.Empty(t, rules)
	assert.Zero(t, stats.Candidates)

	rules, _, err = GenerateRules(nil, 0.5)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestGenerateRules_MissingSubsetIsSkipped(t *testing.T) {
	// {A} is absent although {A,B} is present; the A→B split is skipped, B→A survives.
	table, err := model.NewFrequentItemsetTable(4, []model.FrequentItemset{
		{Itemset: model.NewItemset("B"), Support: 0.75},
		{Itemset: model.NewItemset("A", "B"), Support: 0.5},
	})
	require.NoError(t, err)

	rules, stats, err := GenerateRules(table, 0.1)
	require.NoError(t, err)

	require.Len(t, rules, 1)
	assert.Equal(t, "{'B'}", rules[0].Antecedent.String())
	assert.Equal(t, "{'A'}", rules[0].Consequent.String())
	assert.Zero(t, rules[0].Lift, "consequent support unknown")
	assert.Equal(t, 1, stats.MissingSubsetSupport)
	assert.Equal(t, 2, stats.Candidates)
}

func TestGenerateRules_InconsistentSupportIsSkipped(t *testing.T) {
	table, err := model.NewFrequentItemsetTable(4, []model.FrequentItemset{
		{Itemset: model.NewItemset("A"), Support: 0.25},
		{Itemset: model.NewItemset("B"), Support: 1},
		{Itemset: model.NewItemset("A", "B"), Support: 0.5},
	})
	require.NoError(t, err)

	rules, stats, err := GenerateRules(table, 0.1)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "{'B'}", rules[0].Antecedent.String())
	assert.Equal(t, 1, stats.InconsistentSupport)
}

func TestGenerateRules_InvalidConfidence(t *testing.T) {
	table, err := (&BruteForce{}).Mine(context.Background(), scenarioOne(), 0.5)
	require.NoError(t, err)

	for _, c := range []float64{0, -1, 1.5, math.NaN()} {
		_, _, err := GenerateRules(table, c)
		assert.True(t, errors.Is(err, ErrInvalidThreshold), "confidence %v", c)
	}
}

func TestGenerateRules_ConfidenceThresholdInclusive(t *testing.T) {
	table, err := (&BruteForce{}).Mine(context.Background(), scenarioOne(), 0.5)
	require.NoError(t, err)

	rules, _, err := GenerateRules(table, 1.0)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "[{'C'}, {'B'}, 1]", rules[0].String())
}

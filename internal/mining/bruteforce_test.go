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

func TestBruteForce_Mine_Scenario(t *testing.T) {
	table, err := (&BruteForce{}).Mine(context.Background(), scenarioOne(), 0.5)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"{'A'}":      0.75,
		"{'B'}":      0.75,
		"{'C'}":      0.5,
		"{'A', 'B'}": 0.5,
		"{'B', 'C'}": 0.5,
	}, supportsByKey(table))

	_, ok := table.Support(model.NewItemset("C", "B", "A"))
	assert.False(t, ok, "{A,B,C} has support 0.25 and must be excluded")
	assert.Equal(t, 4, table.TransactionCount())
}

func TestBruteForce_Mine_DisjointBaskets(t *testing.T) {
	table, err := (&BruteForce{}).Mine(context.Background(), txns(
		[]string{"A"},
		[]string{"A"},
		[]string{"B"},
		[]string{"B"},
	), 0.5)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"{'A'}": 0.5, "{'B'}": 0.5}, supportsByKey(table))
	assert.Equal(t, 1, table.MaxSize())

	rules, _, err := GenerateRules(table, 0.1)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestBruteForce_Mine_ThresholdIsInclusive(t *testing.T) {
	table, err := (&BruteForce{}).Mine(context.Background(), txns(
		[]string{"A", "B"},
		[]string{"A", "B"},
		[]string{"A", "B", "C"},
		[]string{"A"},
	), 1.0)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"{'A'}": 1.0}, supportsByKey(table))
}

func TestBruteForce_Mine_InvalidInput(t *testing.T) {
	tests := []struct {
		wantErr      error
		name         string
		transactions []model.Transaction
		minSupport   float64
	}{
		{name: "empty collection", transactions: nil, minSupport: 0.5, wantErr: ErrEmptyInput},
		{name: "zero support", transactions: scenarioOne(), minSupport: 0, wantErr: ErrInvalidThreshold},
		{name: "negative support", transactions: scenarioOne(), minSupport: -0.1, wantErr: ErrInvalidThreshold},
		{name: "support above one", transactions: scenarioOne(), minSupport: 1.01, wantErr: ErrInvalidThreshold},
		{name: "NaN support", transactions: scenarioOne(), minSupport: math.NaN(), wantErr: ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := (&BruteForce{}).Mine(context.Background(), tt.transactions, tt.minSupport)
			require.Error(t, err)
			assert.Nil(t, table)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestBruteForce_Mine_DegenerateInputs(t *testing.T) {
	t.Run("identical transactions", func(t *testing.T) {
		table, err := (&BruteForce{}).Mine(context.Background(), txns(
			[]string{"x", "y"},
			[]string{"y", "x"},
			[]string{"x", "y"},
		), 0.9)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"{'x'}": 1, "{'y'}": 1, "{'x', 'y'}": 1}, supportsByKey(table))
	})

	t.Run("single item", func(t *testing.T) {
		table, err := (&BruteForce{}).Mine(context.Background(), txns([]string{"solo"}), 1)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"{'solo'}": 1}, supportsByKey(table))
	})

	t.Run("only empty baskets", func(t *testing.T) {
		table, err := (&BruteForce{}).Mine(context.Background(), txns([]string{}, []string{" "}), 0.5)
		require.NoError(t, err)
		assert.Equal(t, 0, table.Len())
		assert.Equal(t, 2, table.TransactionCount())
	})

	t.Run("nothing frequent", func(t *testing.T) {
		table, err := (&BruteForce{}).Mine(context.Background(), scenarioOne(), 0.9)
		require.NoError(t, err)
		assert.Equal(t, 0, table.Len())
	})
}

func TestBruteForce_Mine_StopsAfterFirstEmptyLevel(t *testing.T) {
	obs := &recordingObserver{}
	_, err := (&BruteForce{Observer: obs}).Mine(context.Background(), scenarioOne(), 0.5)
	require.NoError(t, err)

	// Level 2 has frequent pairs, level 3 has none, so level 3 is the last one evaluated.
	assert.Equal(t, []int{1, 2, 3}, obs.levels)
	assert.Equal(t, 0, obs.frequent[3])
	// Exhaustive: 3 singles + 3 pairs + 1 triple.
	assert.Equal(t, 7, obs.candidates)

	obs = &recordingObserver{}
	_, err = (&BruteForce{Observer: obs}).Mine(context.Background(), scenarioOne(), 0.9)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, obs.levels)
}

func TestBruteForce_Mine_EvaluatesWholeLevelWithoutPruning(t *testing.T) {
	// A and B are frequent, C is not. Apriori would never count {A,C} or {B,C};
	// brute force must still evaluate all three pairs.
	transactions := txns(
		[]string{"A", "B"},
		[]string{"A", "B"},
		[]string{"A", "B", "C"},
		[]string{"D"},
	)

	bf := &recordingObserver{}
	_, err := (&BruteForce{Observer: bf}).Mine(context.Background(), transactions, 0.5)
	require.NoError(t, err)

	ap := &recordingObserver{}
	_, err = (&Apriori{Observer: ap}).Mine(context.Background(), transactions, 0.5)
	require.NoError(t, err)

	// Brute force: 4 singles + 6 pairs + 4 triples. Apriori: 4 singles + 1 pair.
	assert.Equal(t, 14, bf.candidates)
	assert.Equal(t, 5, ap.candidates)
}

func TestBruteForce_Mine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table, err := (&BruteForce{}).Mine(ctx, scenarioOne(), 0.5)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, table)
}

func TestBruteForce_Mine_Monotonicity(t *testing.T) {
	transactions := randomTransactions(7, 60, 7, 0.45)
	table, err := (&BruteForce{}).Mine(context.Background(), transactions, 0.1)
	require.NoError(t, err)
	require.Positive(t, table.Len())

	for _, e := range table.Entries() {
		items := e.Itemset.Items()
		for skip := range items {
			if len(items) == 1 {
				break
			}
			sub := make([]string, 0, len(items)-1)
			sub = append(sub, items[:skip]...)
			sub = append(sub, items[skip+1:]...)

			subSupport, ok := table.Support(model.NewItemset(sub...))
			require.True(t, ok, "subset %v of frequent %s must be frequent", sub, e.Itemset)
			assert.GreaterOrEqual(t, subSupport, e.Support)
		}
	}

	bySize := make(map[int]int)
	for _, e := range table.Entries() {
		bySize[e.Itemset.Len()]++
	}
	for k := 1; k <= table.MaxSize(); k++ {
		assert.Positive(t, bySize[k], "level %d is empty below the largest itemset size %d", k, table.MaxSize())
	}
	assert.Zero(t, bySize[table.MaxSize()+1])
}

func TestBruteForce_Mine_MatchesDirectCount(t *testing.T) {
	transactions := randomTransactions(11, 40, 6, 0.5)
	table, err := (&BruteForce{}).Mine(context.Background(), transactions, 0.2)
	require.NoError(t, err)

	for _, e := range table.Entries() {
		count := 0
		for _, txn := range transactions {
			if e.Itemset.IsSubsetOf(model.NewItemset(txn.Items...)) {
				count++
			}
		}
		assert.Equal(t, float64(count)/float64(len(transactions)), e.Support, e.Itemset.String())
		assert.GreaterOrEqual(t, e.Support, 0.2)
	}
}

func TestBruteForce_Mine_Deterministic(t *testing.T) {
	transactions := randomTransactions(3, 50, 6, 0.4)
	miner := &BruteForce{}

	first, err := miner.Mine(context.Background(), transactions, 0.15)
	require.NoError(t, err)
	second, err := miner.Mine(context.Background(), transactions, 0.15)
	require.NoError(t, err)

	assert.Equal(t, first.Entries(), second.Entries())

	rulesA, _, err := GenerateRules(first, 0.3)
	require.NoError(t, err)
	rulesB, _, err := GenerateRules(second, 0.3)
	require.NoError(t, err)
	assert.Equal(t, rulesA, rulesB)
}

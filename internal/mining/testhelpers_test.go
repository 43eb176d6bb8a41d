package mining

import (
	"math/rand"
	"strconv"

	"github.com/Veraticus/cooccur/internal/model"
)

func txns(baskets ...[]string) []model.Transaction {
	out := make([]model.Transaction, len(baskets))
	for i, b := range baskets {
		out[i] = model.NewTransaction(strconv.Itoa(i+1), b...)
	}
	return out
}

// scenarioOne is the four-basket log used across the rule and miner tests.
func scenarioOne() []model.Transaction {
	return txns(
		[]string{"A", "B"},
		[]string{"A", "B", "C"},
		[]string{"A"},
		[]string{"B", "C"},
	)
}

// randomTransactions builds a reproducible log over a small item universe.
func randomTransactions(seed int64, n, universe int, density float64) []model.Transaction {
	rng := rand.New(rand.NewSource(seed))
	out := make([]model.Transaction, n)
	for i := range out {
		var items []string
		for j := 0; j < universe; j++ {
			if rng.Float64() < density {
				items = append(items, "item"+strconv.Itoa(j))
			}
		}
		out[i] = model.NewTransaction(strconv.Itoa(i), items...)
	}
	return out
}

type recordingObserver struct {
	levels     []int
	candidates int
	frequent   map[int]int
}

func (r *recordingObserver) OnLevel(k int, _ uint64) {
	r.levels = append(r.levels, k)
}

func (r *recordingObserver) OnCandidate() {
	r.candidates++
}

func (r *recordingObserver) OnLevelDone(k int, frequent int) {
	if r.frequent == nil {
		r.frequent = make(map[int]int)
	}
	r.frequent[k] = frequent
}

func supportsByKey(table *model.FrequentItemsetTable) map[string]float64 {
	out := make(map[string]float64, table.Len())
	for _, e := range table.Entries() {
		out[e.Itemset.String()] = e.Support
	}
	return out
}

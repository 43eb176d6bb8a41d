package mining

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/Veraticus/cooccur/internal/model"
)

// Apriori mines level by level, building k-candidates only from pairs of frequent
// (k-1)-itemsets that share their first k-2 items, and discarding candidates that
// have an infrequent (k-1)-subset before counting them.
type Apriori struct {
	Observer Observer
}

// Name implements Miner.
func (a *Apriori) Name() model.Algorithm {
	return model.AlgorithmApriori
}

// Mine implements Miner.
func (a *Apriori) Mine(ctx context.Context, transactions []model.Transaction, minSupport float64) (*model.FrequentItemsetTable, error) {
	if err := validateInput(transactions, minSupport); err != nil {
		return nil, err
	}

	obs := observerOrNop(a.Observer)
	u := newUniverse(transactions)

	candidates := make([][]int, u.size())
	for i := range candidates {
		candidates[i] = []int{i}
	}

	var found []model.FrequentItemset
	for k := 1; len(candidates) > 0; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		obs.OnLevel(k, uint64(len(candidates)))

		var frequent [][]int
		for _, c := range candidates {
			obs.OnCandidate()
			support := u.support(u.count(u.candidate(c)))
			if support >= minSupport {
				frequent = append(frequent, c)
				found = append(found, model.FrequentItemset{
					Itemset: u.itemset(c),
					Support: support,
				})
			}
		}

		obs.OnLevelDone(k, len(frequent))
		slog.Debug("Apriori level complete",
			"level", k,
			"candidates", len(candidates),
			"frequent", len(frequent))

		candidates = aprioriGen(frequent)
	}

	return model.NewFrequentItemsetTable(len(transactions), found)
}

// aprioriGen joins frequent k-itemsets (sorted index slices) into pruned (k+1)-candidates.
func aprioriGen(frequent [][]int) [][]int {
	if len(frequent) < 2 {
		return nil
	}

	sort.Slice(frequent, func(i, j int) bool {
		return lessIndexes(frequent[i], frequent[j])
	})

	known := make(map[string]struct{}, len(frequent))
	for _, f := range frequent {
		known[indexKey(f)] = struct{}{}
	}

	k := len(frequent[0])
	var out [][]int
	for i := 0; i < len(frequent); i++ {
		for j := i + 1; j < len(frequent); j++ {
			if !samePrefix(frequent[i], frequent[j], k-1) {
				// Sorted order: once the prefix differs no later j can match.
				break
			}
			c := make([]int, k+1)
			copy(c, frequent[i])
			c[k] = frequent[j][k-1]
			if hasInfrequentSubset(c, known) {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

func hasInfrequentSubset(c []int, known map[string]struct{}) bool {
	sub := make([]int, 0, len(c)-1)
	for skip := range c {
		sub = sub[:0]
		for i, v := range c {
			if i != skip {
				sub = append(sub, v)
			}
		}
		if _, ok := known[indexKey(sub)]; !ok {
			return true
		}
	}
	return false
}

func samePrefix(a, b []int, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lessIndexes(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func indexKey(idx []int) string {
	var b strings.Builder
	for i, v := range idx {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

package mining

import (
	"context"
	"log/slog"

	"github.com/Veraticus/cooccur/internal/model"
)

// BruteForce is the exhaustive generate-and-test miner.
//
// Every k-combination of the item universe is a candidate at level k; nothing
// learned at lower levels is used to skip candidates. The search stops after the
// first level with no frequent candidate, which is exact because support never
// grows when items are added.
type BruteForce struct {
	Observer Observer
}

// Name implements Miner.
func (b *BruteForce) Name() model.Algorithm {
	return model.AlgorithmBruteForce
}

// Mine implements Miner.
func (b *BruteForce) Mine(ctx context.Context, transactions []model.Transaction, minSupport float64) (*model.FrequentItemsetTable, error) {
	if err := validateInput(transactions, minSupport); err != nil {
		return nil, err
	}

	obs := observerOrNop(b.Observer)
	u := newUniverse(transactions)

	var found []model.FrequentItemset
	for k := 1; k <= u.size(); k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		obs.OnLevel(k, binomial(u.size(), k))

		var (
			levelFound int
			evaluated  int
			ctxErr     error
		)
		forEachCombination(u.size(), k, func(idx []int) bool {
			evaluated++
			if evaluated%cancelCheckInterval == 0 {
				if ctxErr = ctx.Err(); ctxErr != nil {
					return false
				}
			}
			obs.OnCandidate()

			support := u.support(u.count(u.candidate(idx)))
			if support >= minSupport {
				found = append(found, model.FrequentItemset{
					Itemset: u.itemset(idx),
					Support: support,
				})
				levelFound++
			}
			return true
		})
		if ctxErr != nil {
			return nil, ctxErr
		}

		obs.OnLevelDone(k, levelFound)
		slog.Debug("Brute force level complete",
			"level", k,
			"candidates", evaluated,
			"frequent", levelFound)

		if levelFound == 0 {
			break
		}
	}

	return model.NewFrequentItemsetTable(len(transactions), found)
}

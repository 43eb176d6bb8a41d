package mining

import (
	"context"
	"fmt"

	"github.com/Veraticus/cooccur/internal/model"
)

// cancelCheckInterval is how many candidates are evaluated between context checks.
const cancelCheckInterval = 4096

// Miner computes the frequent itemset table of a transaction collection.
type Miner interface {
	Name() model.Algorithm
	Mine(ctx context.Context, transactions []model.Transaction, minSupport float64) (*model.FrequentItemsetTable, error)
}

// Observer receives progress notifications from level-wise miners.
// Implementations must be cheap; OnCandidate is called once per evaluated candidate.
type Observer interface {
	OnLevel(k int, candidates uint64)
	OnCandidate()
	OnLevelDone(k int, frequent int)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

// OnLevel implements Observer.
func (NopObserver) OnLevel(int, uint64) {}

// OnCandidate implements Observer.
func (NopObserver) OnCandidate() {}

// OnLevelDone implements Observer.
func (NopObserver) OnLevelDone(int, int) {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return NopObserver{}
	}
	return o
}

// New returns the miner for an algorithm. The observer may be nil.
func New(algorithm model.Algorithm, observer Observer) (Miner, error) {
	switch algorithm {
	case model.AlgorithmBruteForce:
		return &BruteForce{Observer: observer}, nil
	case model.AlgorithmApriori:
		return &Apriori{Observer: observer}, nil
	case model.AlgorithmFPGrowth:
		return &FPGrowth{Observer: observer}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// All returns one miner per supported algorithm in comparison order.
func All(observer Observer) []Miner {
	miners := make([]Miner, 0, len(model.Algorithms()))
	for _, a := range model.Algorithms() {
		m, _ := New(a, observer)
		miners = append(miners, m)
	}
	return miners
}

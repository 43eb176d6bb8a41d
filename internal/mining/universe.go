package mining

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/Veraticus/cooccur/internal/model"
)

// universe encodes transactions as bitsets over the sorted set of distinct items.
// Baskets are normalized on the way in, so struct literals that skipped
// NewTransaction mine the same as constructed ones.
type universe struct {
	index   map[string]uint
	items   []string
	baskets []model.Transaction
	rows    []*bitset.BitSet
}

func newUniverse(raw []model.Transaction) *universe {
	transactions := make([]model.Transaction, len(raw))
	for i, t := range raw {
		transactions[i] = model.NewTransaction(t.ID, t.Items...)
	}

	items := model.DistinctItems(transactions)
	index := make(map[string]uint, len(items))
	for i, item := range items {
		index[item] = uint(i)
	}

	rows := make([]*bitset.BitSet, len(transactions))
	for i, t := range transactions {
		row := bitset.New(uint(len(items)))
		for _, item := range t.Items {
			row.Set(index[item])
		}
		rows[i] = row
	}

	return &universe{
		items:   items,
		index:   index,
		baskets: transactions,
		rows:    rows,
	}
}

// size returns the number of distinct items.
func (u *universe) size() int {
	return len(u.items)
}

// candidate encodes a combination of item indexes.
func (u *universe) candidate(idx []int) *bitset.BitSet {
	c := bitset.New(uint(len(u.items)))
	for _, i := range idx {
		c.Set(uint(i))
	}
	return c
}

// count returns how many transactions are supersets of the candidate.
func (u *universe) count(candidate *bitset.BitSet) int {
	n := 0
	for _, row := range u.rows {
		if row.IsSuperSet(candidate) {
			n++
		}
	}
	return n
}

// support converts a transaction count into a fraction of the full collection.
// Every strategy goes through here so supports compare exactly across strategies.
func (u *universe) support(count int) float64 {
	return supportOf(count, len(u.rows))
}

// itemset maps increasing item indexes back to labels.
func (u *universe) itemset(idx []int) model.Itemset {
	labels := make([]string, len(idx))
	for i, j := range idx {
		labels[i] = u.items[j]
	}
	return model.NewItemset(labels...)
}

func supportOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

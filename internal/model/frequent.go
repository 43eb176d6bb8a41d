package model

import (
	"fmt"
	"sort"
)

// FrequentItemset pairs an itemset with its support.
type FrequentItemset struct {
	Itemset
	Support float64
}

// FrequentItemsetTable maps itemsets to their support for one mining run.
// It is immutable once built.
type FrequentItemsetTable struct {
	bySet   map[string]FrequentItemset
	ordered []FrequentItemset
	total   int
	maxSize int
}

// NewFrequentItemsetTable builds a table over total transactions.
// Entries with an empty itemset are rejected, as are duplicate itemsets.
func NewFrequentItemsetTable(total int, entries []FrequentItemset) (*FrequentItemsetTable, error) {
	if total < 0 {
		return nil, fmt.Errorf("transaction count cannot be negative: %d", total)
	}

	t := &FrequentItemsetTable{
		bySet:   make(map[string]FrequentItemset, len(entries)),
		ordered: make([]FrequentItemset, 0, len(entries)),
		total:   total,
	}

	for _, e := range entries {
		if e.Itemset.IsEmpty() {
			return nil, fmt.Errorf("frequent itemset cannot be empty")
		}
		if e.Support < 0 || e.Support > 1 {
			return nil, fmt.Errorf("support must be between 0 and 1, got %v for %s", e.Support, e.Itemset)
		}
		key := e.Itemset.Key()
		if _, dup := t.bySet[key]; dup {
			return nil, fmt.Errorf("duplicate itemset %s", e.Itemset)
		}
		t.bySet[key] = e
		t.ordered = append(t.ordered, e)
		if e.Itemset.Len() > t.maxSize {
			t.maxSize = e.Itemset.Len()
		}
	}

	sort.Slice(t.ordered, func(i, j int) bool {
		a, b := t.ordered[i], t.ordered[j]
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		if a.Itemset.Len() != b.Itemset.Len() {
			return a.Itemset.Len() < b.Itemset.Len()
		}
		return a.Itemset.Compare(b.Itemset) < 0
	})

	return t, nil
}

// Len returns the number of frequent itemsets. A nil table is empty.
func (t *FrequentItemsetTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ordered)
}

// TransactionCount returns the size of the transaction collection supports were computed against.
func (t *FrequentItemsetTable) TransactionCount() int {
	if t == nil {
		return 0
	}
	return t.total
}

// MaxSize returns the size of the largest frequent itemset.
func (t *FrequentItemsetTable) MaxSize() int {
	if t == nil {
		return 0
	}
	return t.maxSize
}

// Support looks up the support of an itemset.
func (t *FrequentItemsetTable) Support(s Itemset) (float64, bool) {
	if t == nil {
		return 0, false
	}
	e, ok := t.bySet[s.Key()]
	return e.Support, ok
}

// Entries returns the itemsets ordered by support descending, then size, then labels.
func (t *FrequentItemsetTable) Entries() []FrequentItemset {
	if t == nil {
		return nil
	}
	out := make([]FrequentItemset, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// TopN returns the first n entries in Entries order.
func (t *FrequentItemsetTable) TopN(n int) []FrequentItemset {
	entries := t.Entries()
	if n < 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

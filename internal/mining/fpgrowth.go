package mining

import (
	"context"
	"log/slog"
	"sort"

	"github.com/Veraticus/cooccur/internal/model"
)

// FPGrowth mines a frequent-pattern tree: transactions are inserted as paths of
// their frequent items in descending frequency order, and each item's conditional
// pattern base is mined recursively.
//
// The observer sees a single level: level 1 announces the frequent header items,
// one candidate per header item mined, and completes with every frequent itemset
// found beneath them.
type FPGrowth struct {
	Observer Observer
}

// Name implements Miner.
func (f *FPGrowth) Name() model.Algorithm {
	return model.AlgorithmFPGrowth
}

type fpNode struct {
	parent   *fpNode
	next     *fpNode // Next node holding the same item
	children map[int]*fpNode
	item     int
	count    int
}

type fpTree struct {
	root   *fpNode
	heads  map[int]*fpNode
	counts map[int]int
	order  []int // Frequent items, most frequent first
}

// fpPattern is a prefix path with the count it contributes.
type fpPattern struct {
	items []int
	count int
}

// Mine implements Miner.
func (f *FPGrowth) Mine(ctx context.Context, transactions []model.Transaction, minSupport float64) (*model.FrequentItemsetTable, error) {
	if err := validateInput(transactions, minSupport); err != nil {
		return nil, err
	}

	obs := observerOrNop(f.Observer)
	u := newUniverse(transactions)
	total := len(u.rows)
	frequentCount := func(count int) bool {
		return supportOf(count, total) >= minSupport
	}

	patterns := make([]fpPattern, 0, len(u.baskets))
	for _, t := range u.baskets {
		items := make([]int, len(t.Items))
		for i, item := range t.Items {
			items[i] = int(u.index[item])
		}
		patterns = append(patterns, fpPattern{items: items, count: 1})
	}

	tree := buildFPTree(patterns, frequentCount)

	var found []model.FrequentItemset
	emit := func(items []int, count int) {
		found = append(found, model.FrequentItemset{
			Itemset: u.itemset(items),
			Support: supportOf(count, total),
		})
	}

	obs.OnLevel(1, uint64(len(tree.order)))
	if err := mineFPTree(ctx, tree, nil, frequentCount, emit, obs.OnCandidate); err != nil {
		return nil, err
	}
	obs.OnLevelDone(1, len(found))

	slog.Debug("FP-Growth complete",
		"frequent_items", len(tree.order),
		"frequent", len(found))

	return model.NewFrequentItemsetTable(total, found)
}

// buildFPTree inserts the frequent items of every pattern into a new tree.
func buildFPTree(patterns []fpPattern, frequentCount func(int) bool) *fpTree {
	counts := make(map[int]int)
	for _, p := range patterns {
		for _, item := range p.items {
			counts[item] += p.count
		}
	}

	t := &fpTree{
		root:   &fpNode{item: -1, children: make(map[int]*fpNode)},
		heads:  make(map[int]*fpNode),
		counts: make(map[int]int),
	}
	for item, c := range counts {
		if frequentCount(c) {
			t.counts[item] = c
			t.order = append(t.order, item)
		}
	}
	sort.Slice(t.order, func(i, j int) bool {
		a, b := t.order[i], t.order[j]
		if t.counts[a] != t.counts[b] {
			return t.counts[a] > t.counts[b]
		}
		return a < b
	})

	rank := make(map[int]int, len(t.order))
	for i, item := range t.order {
		rank[item] = i
	}

	for _, p := range patterns {
		path := make([]int, 0, len(p.items))
		for _, item := range p.items {
			if _, ok := rank[item]; ok {
				path = append(path, item)
			}
		}
		sort.Slice(path, func(i, j int) bool {
			return rank[path[i]] < rank[path[j]]
		})
		t.insert(path, p.count)
	}

	return t
}

func (t *fpTree) insert(path []int, count int) {
	node := t.root
	for _, item := range path {
		child, ok := node.children[item]
		if !ok {
			child = &fpNode{
				parent:   node,
				item:     item,
				children: make(map[int]*fpNode),
				next:     t.heads[item],
			}
			node.children[item] = child
			t.heads[item] = child
		}
		child.count += count
		node = child
	}
}

// prefixPaths returns the conditional pattern base of item.
func (t *fpTree) prefixPaths(item int) []fpPattern {
	var out []fpPattern
	for node := t.heads[item]; node != nil; node = node.next {
		var path []int
		for p := node.parent; p != nil && p != t.root; p = p.parent {
			path = append(path, p.item)
		}
		if len(path) > 0 {
			out = append(out, fpPattern{items: path, count: node.count})
		}
	}
	return out
}

// mineFPTree emits every frequent itemset ending in suffix. onItem, when set,
// is called once per header item of t before it is mined.
func mineFPTree(ctx context.Context, t *fpTree, suffix []int, frequentCount func(int) bool, emit func([]int, int), onItem func()) error {
	for i := len(t.order) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		if onItem != nil {
			onItem()
		}

		item := t.order[i]
		itemset := make([]int, 0, len(suffix)+1)
		itemset = append(itemset, item)
		itemset = append(itemset, suffix...)
		emit(itemset, t.counts[item])

		conditional := buildFPTree(t.prefixPaths(item), frequentCount)
		if len(conditional.order) == 0 {
			continue
		}
		if err := mineFPTree(ctx, conditional, itemset, frequentCount, emit, nil); err != nil {
			return err
		}
	}
	return nil
}

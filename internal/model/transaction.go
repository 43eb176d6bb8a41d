// Package model defines the baskets, itemsets and rules shared by the miners,
// the reports and the run archive.
package model

import (
	"sort"
	"strings"
)

// Transaction is one basket from a transaction log: a set of item labels.
type Transaction struct {
	ID    string
	Items []string // Sorted, unique, non-blank
}

// NewTransaction builds a transaction with trimmed, deduplicated and sorted items.
// Blank labels are dropped.
func NewTransaction(id string, items ...string) Transaction {
	seen := make(map[string]struct{}, len(items))
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		cleaned = append(cleaned, item)
	}
	sort.Strings(cleaned)

	return Transaction{
		ID:    id,
		Items: cleaned,
	}
}

// Contains reports whether the transaction holds the given item.
func (t Transaction) Contains(item string) bool {
	i := sort.SearchStrings(t.Items, item)
	return i < len(t.Items) && t.Items[i] == item
}

// DistinctItems returns the sorted set of every item label occurring in any transaction.
func DistinctItems(transactions []Transaction) []string {
	seen := make(map[string]struct{})
	for _, t := range transactions {
		for _, item := range t.Items {
			seen[item] = struct{}{}
		}
	}

	items := make([]string, 0, len(seen))
	for item := range seen {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

package model

import (
	"sort"
	"strconv"
	"strings"
)

// Itemset is an immutable, unordered group of unique item labels.
// Two itemsets built from the same labels in any order are equal and share a Key.
type Itemset struct {
	items []string
}

// NewItemset builds an itemset from labels, dropping duplicates and blanks.
func NewItemset(labels ...string) Itemset {
	return Itemset{items: NewTransaction("", labels...).Items}
}

// itemsetFromSorted wraps an already sorted, unique slice without copying.
func itemsetFromSorted(items []string) Itemset {
	return Itemset{items: items}
}

// Len returns the number of labels.
func (s Itemset) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the itemset has no labels.
func (s Itemset) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns a copy of the sorted labels.
func (s Itemset) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Key returns the canonical identity of the itemset. Each label is written
// with its byte length in front, so label content never reads as a boundary.
func (s Itemset) Key() string {
	var b strings.Builder
	for _, item := range s.items {
		b.WriteString(strconv.Itoa(len(item)))
		b.WriteByte(':')
		b.WriteString(item)
	}
	return b.String()
}

// Contains reports whether label is a member.
func (s Itemset) Contains(label string) bool {
	i := sort.SearchStrings(s.items, label)
	return i < len(s.items) && s.items[i] == label
}

// IsSubsetOf reports whether every label of s is in other.
func (s Itemset) IsSubsetOf(other Itemset) bool {
	if len(s.items) > len(other.items) {
		return false
	}
	j := 0
	for _, item := range s.items {
		for j < len(other.items) && other.items[j] < item {
			j++
		}
		if j == len(other.items) || other.items[j] != item {
			return false
		}
		j++
	}
	return true
}

// Equal reports element-set equality.
func (s Itemset) Equal(other Itemset) bool {
	return s.Compare(other) == 0
}

// Minus returns the labels of s that are not in other.
func (s Itemset) Minus(other Itemset) Itemset {
	out := make([]string, 0, len(s.items))
	for _, item := range s.items {
		if !other.Contains(item) {
			out = append(out, item)
		}
	}
	return itemsetFromSorted(out)
}

// Union returns the labels present in either itemset.
func (s Itemset) Union(other Itemset) Itemset {
	out := make([]string, 0, len(s.items)+len(other.items))
	i, j := 0, 0
	for i < len(s.items) && j < len(other.items) {
		switch {
		case s.items[i] < other.items[j]:
			out = append(out, s.items[i])
			i++
		case s.items[i] > other.items[j]:
			out = append(out, other.items[j])
			j++
		default:
			out = append(out, s.items[i])
			i++
			j++
		}
	}
	out = append(out, s.items[i:]...)
	out = append(out, other.items[j:]...)
	return itemsetFromSorted(out)
}

// Compare orders itemsets lexically by their sorted labels; a proper prefix sorts first.
func (s Itemset) Compare(other Itemset) int {
	for i := 0; i < len(s.items) && i < len(other.items); i++ {
		if c := strings.Compare(s.items[i], other.items[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(s.items) < len(other.items):
		return -1
	case len(s.items) > len(other.items):
		return 1
	default:
		return 0
	}
}

// String renders the itemset as {'a', 'b'}.
func (s Itemset) String() string {
	quoted := make([]string, len(s.items))
	for i, item := range s.items {
		quoted[i] = "'" + item + "'"
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

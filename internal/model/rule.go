package model

import (
	"fmt"
	"sort"
)

// Rule is an association rule Antecedent → Consequent derived from a frequent itemset.
type Rule struct {
	Antecedent Itemset
	Consequent Itemset
	Support    float64 // Support of Antecedent ∪ Consequent
	Confidence float64 // Support / support(Antecedent)
	Lift       float64 // Confidence / support(Consequent); 0 when unknown
}

// Itemset returns the parent itemset the rule was split from.
func (r Rule) Itemset() Itemset {
	return r.Antecedent.Union(r.Consequent)
}

// Validate checks the partition and range invariants of a rule.
func (r Rule) Validate() error {
	if r.Antecedent.IsEmpty() || r.Consequent.IsEmpty() {
		return fmt.Errorf("antecedent and consequent must be non-empty")
	}
	for _, item := range r.Antecedent.items {
		if r.Consequent.Contains(item) {
			return fmt.Errorf("item %q appears on both sides of rule", item)
		}
	}
	if r.Confidence <= 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence must be in (0, 1], got %v", r.Confidence)
	}
	if r.Support <= 0 || r.Support > 1 {
		return fmt.Errorf("support must be in (0, 1], got %v", r.Support)
	}
	return nil
}

// String renders the rule in the "[{antecedent}, {consequent}, confidence]" form.
func (r Rule) String() string {
	return fmt.Sprintf("[%s, %s, %v]", r.Antecedent, r.Consequent, r.Confidence)
}

// Rules is a slice of Rule that sorts by ranking order.
type Rules []Rule

// Len implements sort.Interface.
func (r Rules) Len() int {
	return len(r)
}

// Less implements sort.Interface: confidence descending, support descending,
// then antecedent and consequent labels ascending.
func (r Rules) Less(i, j int) bool {
	if r[i].Confidence != r[j].Confidence {
		return r[i].Confidence > r[j].Confidence
	}
	if r[i].Support != r[j].Support {
		return r[i].Support > r[j].Support
	}
	if c := r[i].Antecedent.Compare(r[j].Antecedent); c != 0 {
		return c < 0
	}
	return r[i].Consequent.Compare(r[j].Consequent) < 0
}

// Swap implements sort.Interface.
func (r Rules) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

// Sort orders the rules in place by ranking order.
func (r Rules) Sort() {
	sort.Sort(r)
}

// Top returns the highest-ranked rule, or nil if empty. The slice must already be sorted.
func (r Rules) Top() *Rule {
	if len(r) == 0 {
		return nil
	}
	return &r[0]
}

// TopN returns a copy of the first n rules.
func (r Rules) TopN(n int) Rules {
	if n <= 0 {
		return Rules{}
	}
	if n > len(r) {
		n = len(r)
	}
	out := make(Rules, n)
	copy(out, r[:n])
	return out
}

package compare

import (
	"fmt"
	"math"

	"github.com/Veraticus/cooccur/internal/model"
)

// supportTolerance absorbs float noise when strategies compute support differently.
const supportTolerance = 1e-9

// Mismatch is an itemset both tables found with different supports.
type Mismatch struct {
	Itemset model.Itemset
	Oracle  float64
	Other   float64
}

// Diff lists how another table departs from the oracle table.
type Diff struct {
	Missing    []model.FrequentItemset
	Extra      []model.FrequentItemset
	Mismatched []Mismatch
}

// Agrees reports whether the tables hold the same itemsets with the same supports.
func (d Diff) Agrees() bool {
	return len(d.Missing) == 0 && len(d.Extra) == 0 && len(d.Mismatched) == 0
}

// String summarises the diff on one line.
func (d Diff) String() string {
	if d.Agrees() {
		return "agrees with brute force"
	}
	return fmt.Sprintf("%d missing, %d extra, %d support mismatches",
		len(d.Missing), len(d.Extra), len(d.Mismatched))
}

// Agreement compares other against oracle.
func Agreement(oracle, other *model.FrequentItemsetTable) Diff {
	var d Diff

	for _, fi := range oracle.Entries() {
		sup, ok := other.Support(fi.Itemset)
		switch {
		case !ok:
			d.Missing = append(d.Missing, fi)
		case math.Abs(sup-fi.Support) > supportTolerance:
			d.Mismatched = append(d.Mismatched, Mismatch{Itemset: fi.Itemset, Oracle: fi.Support, Other: sup})
		}
	}

	for _, fi := range other.Entries() {
		if _, ok := oracle.Support(fi.Itemset); !ok {
			d.Extra = append(d.Extra, fi)
		}
	}

	return d
}

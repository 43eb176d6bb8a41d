package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewItemset_CanonicalIdentity(t *testing.T) {
	a := NewItemset("milk", "bread", "eggs")
	b := NewItemset("eggs", "milk", "bread", "milk", " ")

	assert.Equal(t, a.Key(), b.Key())
	assert.True(t, a.Equal(b))
	assert.Equal(t, []string{"bread", "eggs", "milk"}, b.Items())
	assert.Equal(t, 3, b.Len())
}

func TestItemset_Key_DistinguishesLabelContent(t *testing.T) {
	tests := []struct {
		name string
		a, b Itemset
	}{
		{"unit separator in label", NewItemset("a\x1fb"), NewItemset("a", "b")},
		{"colon and digits in label", NewItemset("1:a"), NewItemset("1", "a")},
		{"concatenated labels", NewItemset("ab"), NewItemset("a", "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, tt.a.Key(), tt.b.Key())
			assert.False(t, tt.a.Equal(tt.b))
		})
	}
}

func TestItemset_Items_ReturnsCopy(t *testing.T) {
	s := NewItemset("a", "b")
	items := s.Items()
	items[0] = "z"

	assert.Equal(t, []string{"a", "b"}, s.Items())
}

func TestItemset_SetOperations(t *testing.T) {
	abc := NewItemset("A", "B", "C")
	ab := NewItemset("B", "A")
	cd := NewItemset("C", "D")

	assert.True(t, ab.IsSubsetOf(abc))
	assert.False(t, abc.IsSubsetOf(ab))
	assert.False(t, cd.IsSubsetOf(abc))
	assert.True(t, NewItemset().IsSubsetOf(ab))

	assert.Equal(t, []string{"C"}, abc.Minus(ab).Items())
	assert.Equal(t, []string{"A", "B", "C", "D"}, ab.Union(cd).Items())
	assert.Equal(t, []string{"A", "B", "C"}, abc.Union(ab).Items())
}

func TestItemset_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Itemset
		want int
	}{
		{"equal", NewItemset("a", "b"), NewItemset("b", "a"), 0},
		{"lexical", NewItemset("a", "c"), NewItemset("b"), -1},
		{"prefix first", NewItemset("a"), NewItemset("a", "b"), -1},
		{"greater", NewItemset("b"), NewItemset("a", "z"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
		})
	}
}

func TestItemset_String(t *testing.T) {
	assert.Equal(t, "{'Beer', 'Diapers'}", NewItemset("Diapers", "Beer").String())
	assert.Equal(t, "{}", NewItemset().String())
}

func TestDistinctItems(t *testing.T) {
	txns := []Transaction{
		NewTransaction("1", "b", "a"),
		NewTransaction("2", "c", "a"),
		NewTransaction("3"),
	}

	assert.Equal(t, []string{"a", "b", "c"}, DistinctItems(txns))
	assert.True(t, txns[0].Contains("a"))
	assert.False(t, txns[0].Contains("c"))
}

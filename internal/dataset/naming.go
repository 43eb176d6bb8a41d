package dataset

import (
	"strings"
	"unicode"
)

var brandCasing = strings.NewReplacer(
	"restaurant bar", "Restaurant & Bar",
	"pharmacy", "Pharmacy",
	"wholefoods", "Wholefoods",
	"apple", "Apple",
)

// FriendlyName turns a file stem like "restaurant_bar_transactions" into
// "Restaurant & Bar".
func FriendlyName(stem string) string {
	s := strings.ReplaceAll(stem, "_transactions", "")
	s = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "_", " ")))
	s = brandCasing.Replace(s)

	words := strings.Fields(s)
	for i, w := range words {
		if isLowerWord(w) {
			words[i] = capitalize(w)
		}
	}
	return strings.Join(words, " ")
}

// isLowerWord reports whether w has at least one letter and no upper case letters.
func isLowerWord(w string) bool {
	cased := false
	for _, r := range w {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

func capitalize(w string) string {
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

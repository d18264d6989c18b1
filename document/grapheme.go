package document

import (
	"unicode"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// Graphemes splits s into user-perceived characters (extended grapheme
// clusters).
func Graphemes(s string) []string {
	var out []string
	iter := graphemes.FromString(s)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

// LastGrapheme returns the last grapheme cluster of s, or "" for "".
func LastGrapheme(s string) string {
	last := ""
	iter := graphemes.FromString(s)
	for iter.Next() {
		last = iter.Value()
	}
	return last
}

// IsSpace reports whether a grapheme cluster is whitespace only. The
// paragraph break counts as whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Package suggest finds the nearest known word for a misspelled one using
// a sequence-matcher similarity ratio.
package suggest

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCutoff is the minimum ratio for a candidate to count as plausible.
const DefaultCutoff = 0.6

// Ratio returns the similarity of a and b in [0, 1], compared character by
// character and case-insensitively.
func Ratio(a, b string) float64 {
	m := difflib.NewMatcher(chars(strings.ToLower(a)), chars(strings.ToLower(b)))
	return m.Ratio()
}

// Closest returns the candidate most similar to word with a ratio of at
// least cutoff. Ties keep the earliest candidate. ok is false when nothing
// is close enough.
func Closest(word string, candidates []string, cutoff float64) (best string, ok bool) {
	bestRatio := cutoff
	for _, c := range candidates {
		r := Ratio(word, c)
		if r > bestRatio || (!ok && r == bestRatio) {
			best, bestRatio, ok = c, r, true
		}
	}
	return best, ok
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// internal/generate/charmap.go
//
// Letter multiset used for the seed-word letter budget.
// A word is formable from a seed iff the word's CharMap is contained in the
// seed's CharMap (per-letter demand never exceeds the budget).

package generate

import "strings"

// CharMap counts occurrences per letter. Keys are lowercase runes.
type CharMap map[rune]int

// NewCharMap builds the letter multiset of s (lowercased).
func NewCharMap(s string) CharMap {
	m := make(CharMap)
	for _, r := range strings.ToLower(s) {
		m[r]++
	}
	return m
}

// Count returns the occurrence count for r (0 if absent).
func (m CharMap) Count(r rune) int { return m[r] }

// Contains reports whether other is a sub-multiset of m:
// for every letter, other's count does not exceed m's.
func (m CharMap) Contains(other CharMap) bool {
	for r, n := range other {
		if n > m[r] {
			return false
		}
	}
	return true
}

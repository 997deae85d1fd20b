// internal/generate/generate.go
//
// Word generator: given a seed word and a dictionary, enumerate every valid
// sub-word and score it.
//
// Filtering (per candidate):
//   - shorter than 3 letters, or longer than the seed → rejected
//   - equal to the seed itself (case-insensitive) → rejected
//     (same-length anagrams of the seed are valid)
//   - letters not coverable by the seed's letter budget → rejected
//   - duplicate of an earlier candidate → rejected
//
// Scoring is a batch operation over the surviving set: word length and raw
// uncommonness are min/max-normalized per level, so scores are comparable
// within one level but not across levels. A degenerate range (all words the
// same length, or same uncommonness) gives full credit on that axis.

package generate

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wordmine/go-server/internal/words"
)

// WordResult is one scored sub-word as persisted in level files.
type WordResult struct {
	Word                  string `json:"word"`
	EstimatedUncommonness int    `json:"estimated_uncommonness"` // bucket 1..5
	CombinedScore         int    `json:"combined_score"`         // 10..1000
}

// Generate produces the scored sub-word list for seedWord over dictionary.
// Returns an empty (non-nil) slice when nothing survives filtering.
// Output is sorted descending by combined score; ties keep dictionary order.
func Generate(seedWord string, dictionary []string, lang words.Language) []WordResult {
	seed := strings.ToLower(seedWord)
	seedLen := utf8.RuneCountInString(seed)
	budget := NewCharMap(seed)

	type candidate struct {
		display  string
		length   int
		uncommon int
	}
	var cands []candidate
	seen := make(map[string]struct{}, len(dictionary))

	for _, raw := range dictionary {
		lower := strings.ToLower(raw)
		n := utf8.RuneCountInString(lower)
		if n < words.MinWordLength || n > seedLen || lower == seed {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		if !budget.Contains(NewCharMap(lower)) {
			continue
		}
		seen[lower] = struct{}{}
		cands = append(cands, candidate{
			display:  displayForm(raw, lang),
			length:   n,
			uncommon: Uncommonness(lower, lang),
		})
	}
	if len(cands) == 0 {
		return []WordResult{}
	}

	minLen, maxLen := cands[0].length, cands[0].length
	minUnc, maxUnc := cands[0].uncommon, cands[0].uncommon
	for _, c := range cands[1:] {
		minLen = min(minLen, c.length)
		maxLen = max(maxLen, c.length)
		minUnc = min(minUnc, c.uncommon)
		maxUnc = max(maxUnc, c.uncommon)
	}

	results := make([]WordResult, len(cands))
	for i, c := range cands {
		nl := normalize(c.length, minLen, maxLen)
		nu := normalize(c.uncommon, minUnc, maxUnc)
		combined := (nl + nu) / 2
		results[i] = WordResult{
			Word:                  c.display,
			EstimatedUncommonness: int(math.Round(1 + nu*4)),
			CombinedScore:         int(math.Round(10 + combined*990)),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CombinedScore > results[j].CombinedScore
	})
	return results
}

// normalize maps v into [0,1] over [lo,hi]; a zero-width range gives full
// credit rather than dividing by zero.
func normalize(v, lo, hi int) float64 {
	if hi == lo {
		return 1
	}
	return float64(v-lo) / float64(hi-lo)
}

// displayForm applies the one-time presentation casing: English words get an
// initial capital, German words keep their dictionary casing. Matching
// elsewhere always uses lowercase forms, so this is purely cosmetic.
func displayForm(w string, lang words.Language) string {
	if lang == words.German {
		return w
	}
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

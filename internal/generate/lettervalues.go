// internal/generate/lettervalues.go
//
// Static per-language letter-value tables. Rarer letters score higher; the
// sum over a word's letters is its raw "uncommonness", normalized per level
// by the generator. Values follow the familiar tile distributions for each
// language; the German table covers ä, ö, ü and ß.

package generate

import "github.com/wordmine/go-server/internal/words"

var englishLetterValues = map[rune]int{
	'a': 1, 'e': 1, 'i': 1, 'l': 1, 'n': 1, 'o': 1, 'r': 1, 's': 1, 't': 1, 'u': 1,
	'd': 2, 'g': 2,
	'b': 3, 'c': 3, 'm': 3, 'p': 3,
	'f': 4, 'h': 4, 'v': 4, 'w': 4, 'y': 4,
	'k': 5,
	'j': 8, 'x': 8,
	'q': 10, 'z': 10,
}

var germanLetterValues = map[rune]int{
	'a': 1, 'd': 1, 'e': 1, 'i': 1, 'n': 1, 'r': 1, 's': 1, 't': 1, 'u': 1,
	'g': 2, 'h': 2, 'l': 2, 'o': 2,
	'b': 3, 'm': 3, 'w': 3, 'z': 3,
	'c': 4, 'f': 4, 'k': 4, 'p': 4,
	'ä': 6, 'j': 6, 'ü': 6, 'v': 6,
	'ö': 8, 'x': 8, 'ß': 8,
	'q': 10, 'y': 10,
}

// letterValue returns the table value for r in the given language.
// Unknown runes count 1 so a stray character never zeroes a word.
func letterValue(r rune, lang words.Language) int {
	table := englishLetterValues
	if lang == words.German {
		table = germanLetterValues
	}
	if v, ok := table[r]; ok {
		return v
	}
	return 1
}

// Uncommonness sums the letter values of word (expected lowercase).
func Uncommonness(word string, lang words.Language) int {
	total := 0
	for _, r := range word {
		total += letterValue(r, lang)
	}
	return total
}

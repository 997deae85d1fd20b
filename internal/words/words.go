// internal/words/words.go
//
// Dictionary management for the word-mining game.
//
// Responsibilities:
//   - Load per-language dictionaries from environment-provided files or fall
//     back to embedded defaults.
//   - Normalize and validate entries (≥3 letters, language alphabet only).
//   - Preserve dictionary order: the generator uses input order as the sort
//     tie-breaker, so order matters.
//
// Languages:
//   - "en": entries are lowercased on load.
//   - "de": entries keep their dictionary casing (German noun capitalization
//     is part of the display form); matching always happens on lowercase
//     forms downstream.
//
// Environment variables:
//   WORDS_EN_FILE=/path/to/english.txt
//   WORDS_DE_FILE=/path/to/german.txt
//
// Initialization is run once (sync.Once).

package words

import (
	"bufio"
	_ "embed"
	"errors"
	"os"
	"strings"
	"sync"
	"unicode/utf8"
)

// Language tags one of the two supported dictionaries.
type Language string

const (
	English Language = "en"
	German  Language = "de"
)

// MinWordLength is the shortest playable word.
const MinWordLength = 3

// --- embedded tiny defaults (ensures server runs even if no files configured) ---

//go:embed default_small_en.txt
var embeddedEnglish string

//go:embed default_small_de.txt
var embeddedGerman string

var (
	initOnce     sync.Once
	dictionaries map[Language][]string
	initialErr   error
)

// Init loads dictionaries exactly once.
// Returns an error if either language ends up with an empty dictionary.
func Init() error {
	initOnce.Do(func() {
		dictionaries = make(map[Language][]string, 2)

		for lang, src := range map[Language]struct {
			envVar   string
			embedded string
		}{
			English: {"WORDS_EN_FILE", embeddedEnglish},
			German:  {"WORDS_DE_FILE", embeddedGerman},
		} {
			var list []string
			if path := os.Getenv(src.envVar); path != "" {
				var err error
				list, err = readWordFile(path, lang)
				if err != nil {
					initialErr = err
					return
				}
			} else {
				list = normalizeLines(src.embedded, lang)
			}
			if len(list) == 0 {
				initialErr = errors.New("words: empty dictionary for " + string(lang))
				return
			}
			dictionaries[lang] = list
		}
	})
	return initialErr
}

// Dictionary returns the loaded word list for lang, in file order.
// Returns nil for an unknown language or before Init.
func Dictionary(lang Language) []string {
	return dictionaries[lang]
}

// Known reports whether lang is a supported language tag.
func Known(lang Language) bool {
	return lang == English || lang == German
}

// Stats returns loaded word counts per language.
func Stats() (english int, german int) {
	return len(dictionaries[English]), len(dictionaries[German])
}

// readWordFile loads one word per line from a file, keeping only valid
// entries for the language.
func readWordFile(path string, lang Language) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, ok := normalizeWord(sc.Text(), lang); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes an embedded multiline string into a word list.
func normalizeLines(s string, lang Language) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w, ok := normalizeWord(line, lang); ok {
			out = append(out, w)
		}
	}
	return out
}

// normalizeWord trims, lowercases for English, and validates one entry.
func normalizeWord(raw string, lang Language) (string, bool) {
	w := strings.TrimSpace(raw)
	if lang == English {
		w = strings.ToLower(w)
	}
	if utf8.RuneCountInString(w) < MinWordLength || !IsAlpha(w, lang) {
		return "", false
	}
	return w, true
}

// IsAlpha reports whether s consists only of letters of the language's
// alphabet. English is ASCII a–z; German additionally allows umlauts and ß,
// in either case.
func IsAlpha(s string, lang Language) bool {
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if lang == German {
			switch r {
			case 'ä', 'ö', 'ü', 'ß':
				continue
			}
		}
		return false
	}
	return s != ""
}

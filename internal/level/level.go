// internal/level/level.go
//
// Level file format: the persisted output of the word generator for one seed
// word, consumed by the session engine.
//
// Wire shape (one JSON file per seed word per language):
//
//	{
//	  "seed_word": "<string>",
//	  "words_list": [
//	    { "word": "...", "estimated_uncommonness": 1-5, "combined_score": 10-1000 },
//	    ...
//	  ]
//	}
//
// A payload without a words_list array is malformed and fails the load
// outright; there is no partial parse.

package level

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wordmine/go-server/internal/generate"
)

// Level is one playable level: a seed word plus its scored sub-words.
type Level struct {
	SeedWord  string                `json:"seed_word"`
	WordsList []generate.WordResult `json:"words_list"`
}

// ErrMalformed reports a level payload that does not match the wire shape.
var ErrMalformed = errors.New("level: malformed level file")

// Parse decodes and validates a level file payload.
func Parse(data []byte) (*Level, error) {
	// Decode words_list as RawMessage first so "missing" and "null" are
	// distinguishable from an empty array.
	var probe struct {
		SeedWord  string          `json:"seed_word"`
		WordsList json.RawMessage `json:"words_list"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(probe.WordsList) == 0 || string(probe.WordsList) == "null" {
		return nil, fmt.Errorf("%w: missing words_list", ErrMalformed)
	}
	var list []generate.WordResult
	if err := json.Unmarshal(probe.WordsList, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &Level{SeedWord: probe.SeedWord, WordsList: list}, nil
}

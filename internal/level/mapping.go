// internal/level/mapping.go
//
// Level mapping file: one JSON object per language mapping stringified level
// numbers to level filenames. Two forms are accepted per entry:
//
//	"3": "garden.json"                      (legacy single-file form)
//	"3": ["garden.json", "planets.json"]    (multi-seed form)
//
// With the multi-seed form one candidate is chosen at random when the level
// is entered fresh.

package level

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
)

// Mapping maps stringified level numbers to candidate filenames.
type Mapping map[string]Candidates

// Candidates is the filename set for one level; always at least one entry
// after a successful parse.
type Candidates []string

// UnmarshalJSON accepts either a bare filename string or a list of them.
func (c *Candidates) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = Candidates{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("level mapping entry: %w", err)
	}
	if len(many) == 0 {
		return fmt.Errorf("level mapping entry: empty candidate list")
	}
	*c = Candidates(many)
	return nil
}

// ParseMapping decodes a level mapping file.
func ParseMapping(data []byte) (Mapping, error) {
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("level mapping: %w", err)
	}
	return m, nil
}

// PickFile resolves a level number to one filename, choosing uniformly at
// random among multi-seed candidates. ok is false for unmapped levels.
func (m Mapping) PickFile(levelNum int, rng *rand.Rand) (filename string, ok bool) {
	c, ok := m[strconv.Itoa(levelNum)]
	if !ok || len(c) == 0 {
		return "", false
	}
	if len(c) == 1 {
		return c[0], true
	}
	return c[rng.Intn(len(c))], true
}

// Levels reports how many level numbers are mapped.
func (m Mapping) Levels() int { return len(m) }

// internal/level/builder.go
//
// Fallback level source: synthesizes levels on demand from a built-in seed
// table and the loaded dictionary. Used when no levels directory is
// configured, so the server runs with zero configuration. Multi-seed levels
// pick one candidate at random, like the multi-seed mapping form.

package level

import (
	"fmt"
	"math/rand"

	"github.com/wordmine/go-server/internal/generate"
	"github.com/wordmine/go-server/internal/words"
)

// builtinSeeds lists seed-word candidates per level, easiest first.
var builtinSeeds = map[words.Language][][]string{
	words.English: {
		{"garden"},
		{"listen", "tinsel"},
		{"silent"},
		{"danger", "gander"},
		{"enlist"},
	},
	words.German: {
		{"Regal"},
		{"Garten"},
		{"Lager"},
		{"Straßen"},
		{"Galerien"},
	},
}

// Builder synthesizes levels from built-in seeds.
type Builder struct{}

// Level implements Source. The filename return is always empty.
func (Builder) Level(lang words.Language, num int, rng *rand.Rand) (*Level, string, error) {
	seeds := builtinSeeds[lang]
	if num < 1 || num > len(seeds) {
		return nil, "", fmt.Errorf("level: no built-in seed for level %d (%s)", num, lang)
	}
	candidates := seeds[num-1]
	seed := candidates[0]
	if len(candidates) > 1 {
		seed = candidates[rng.Intn(len(candidates))]
	}
	return Build(seed, words.Dictionary(lang), lang), "", nil
}

// Build runs the generator for one seed word and wraps the result as a Level.
func Build(seed string, dictionary []string, lang words.Language) *Level {
	return &Level{
		SeedWord:  seed,
		WordsList: generate.Generate(seed, dictionary, lang),
	}
}

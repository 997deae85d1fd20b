package level

import (
	"math/rand"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordmine/go-server/internal/words"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"en/levels.json": {Data: []byte(`{"1": "listen.json", "2": ["listen.json", "broken.json"]}`)},
		"en/listen.json": {Data: []byte(`{"seed_word":"listen","words_list":[{"word":"Ten","estimated_uncommonness":1,"combined_score":10}]}`)},
		"en/broken.json": {Data: []byte(`{"seed_word":"listen"}`)},
	}
}

func TestLoader_Level(t *testing.T) {
	l := NewLoader(testFS())
	rng := rand.New(rand.NewSource(1))

	lvl, filename, err := l.Level(words.English, 1, rng)
	require.NoError(t, err)
	assert.Equal(t, "listen.json", filename)
	assert.Equal(t, "listen", lvl.SeedWord)
	require.Len(t, lvl.WordsList, 1)
}

func TestLoader_UnmappedLevel(t *testing.T) {
	l := NewLoader(testFS())
	_, _, err := l.Level(words.English, 42, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestLoader_MissingMapping(t *testing.T) {
	l := NewLoader(testFS())
	_, _, err := l.Level(words.German, 1, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestLoader_MalformedLevelFile(t *testing.T) {
	fsys := fstest.MapFS{
		"en/levels.json": {Data: []byte(`{"1": "broken.json"}`)},
		"en/broken.json": {Data: []byte(`{"seed_word":"listen"}`)},
	}
	_, _, err := NewLoader(fsys).Level(words.English, 1, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestBuilder_Level(t *testing.T) {
	require.NoError(t, words.Init())
	rng := rand.New(rand.NewSource(1))

	lvl, filename, err := Builder{}.Level(words.English, 1, rng)
	require.NoError(t, err)
	assert.Empty(t, filename)
	assert.Equal(t, "garden", lvl.SeedWord)
	assert.NotEmpty(t, lvl.WordsList, "embedded dictionary must yield sub-words for garden")

	_, _, err = Builder{}.Level(words.English, 99, rng)
	assert.Error(t, err)
}

func TestBuild_ExcludesSeed(t *testing.T) {
	require.NoError(t, words.Init())
	lvl := Build("listen", words.Dictionary(words.English), words.English)
	for _, wr := range lvl.WordsList {
		assert.False(t, strings.EqualFold("listen", wr.Word), "seed word must never be its own sub-word")
	}
	assert.NotEmpty(t, lvl.WordsList)
}

package words

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_EmbeddedDefaults(t *testing.T) {
	require.NoError(t, Init())

	en, de := Stats()
	assert.NotZero(t, en)
	assert.NotZero(t, de)

	for _, w := range Dictionary(English) {
		assert.GreaterOrEqual(t, utf8.RuneCountInString(w), MinWordLength, "%q", w)
		assert.True(t, IsAlpha(w, English), "%q", w)
	}
	for _, w := range Dictionary(German) {
		assert.GreaterOrEqual(t, utf8.RuneCountInString(w), MinWordLength, "%q", w)
		assert.True(t, IsAlpha(w, German), "%q", w)
	}
}

func TestDictionary_EnglishLowercased(t *testing.T) {
	require.NoError(t, Init())
	for _, w := range Dictionary(English) {
		assert.Equal(t, w, strings.ToLower(w), "English entries are normalized to lowercase")
	}
}

func TestDictionary_GermanKeepsCasing(t *testing.T) {
	require.NoError(t, Init())
	assert.Contains(t, Dictionary(German), "Garten", "German nouns keep their capitalization")
	assert.Contains(t, Dictionary(German), "arg")
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(English))
	assert.True(t, Known(German))
	assert.False(t, Known(Language("fr")))
	assert.False(t, Known(Language("")))
}

func TestIsAlpha(t *testing.T) {
	tests := []struct {
		word string
		lang Language
		want bool
	}{
		{"listen", English, true},
		{"Listen", English, true},
		{"straße", German, true},
		{"GRÜSSE", German, true},
		{"Grüße", German, true},
		{"straße", English, false},
		{"lis-ten", English, false},
		{"", English, false},
		{"l1sten", English, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAlpha(tt.word, tt.lang), "%q (%s)", tt.word, tt.lang)
	}
}

package level

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordmine/go-server/internal/generate"
)

func TestParse(t *testing.T) {
	data := []byte(`{
		"seed_word": "listen",
		"words_list": [
			{"word": "Tinsel", "estimated_uncommonness": 4, "combined_score": 955},
			{"word": "Ten", "estimated_uncommonness": 1, "combined_score": 10}
		]
	}`)
	lvl, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "listen", lvl.SeedWord)
	require.Len(t, lvl.WordsList, 2)
	assert.Equal(t, "Tinsel", lvl.WordsList[0].Word)
	assert.Equal(t, 955, lvl.WordsList[0].CombinedScore)
}

func TestParse_EmptyWordsList(t *testing.T) {
	lvl, err := Parse([]byte(`{"seed_word": "xyz", "words_list": []}`))
	require.NoError(t, err)
	assert.Empty(t, lvl.WordsList)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing words_list", `{"seed_word": "listen"}`},
		{"null words_list", `{"seed_word": "listen", "words_list": null}`},
		{"words_list not an array", `{"seed_word": "listen", "words_list": "nope"}`},
		{"not json", `seed_word=listen`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLevel_WireShape(t *testing.T) {
	lvl := &Level{
		SeedWord: "listen",
		WordsList: []generate.WordResult{
			{Word: "Ten", EstimatedUncommonness: 1, CombinedScore: 10},
		},
	}
	data, err := json.Marshal(lvl)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"seed_word":"listen","words_list":[{"word":"Ten","estimated_uncommonness":1,"combined_score":10}]}`,
		string(data))
}

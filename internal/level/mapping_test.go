package level

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMapping_BothForms(t *testing.T) {
	m, err := ParseMapping([]byte(`{
		"1": "garden.json",
		"2": ["listen.json", "tinsel.json"]
	}`))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Levels())
	assert.Equal(t, Candidates{"garden.json"}, m["1"])
	assert.Equal(t, Candidates{"listen.json", "tinsel.json"}, m["2"])
}

func TestParseMapping_Errors(t *testing.T) {
	_, err := ParseMapping([]byte(`{"1": []}`))
	assert.Error(t, err, "empty candidate lists are rejected")

	_, err = ParseMapping([]byte(`{"1": 42}`))
	assert.Error(t, err)
}

func TestMapping_PickFile(t *testing.T) {
	m, err := ParseMapping([]byte(`{
		"1": "garden.json",
		"2": ["a.json", "b.json", "c.json"]
	}`))
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	f, ok := m.PickFile(1, rng)
	require.True(t, ok)
	assert.Equal(t, "garden.json", f)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		f, ok := m.PickFile(2, rng)
		require.True(t, ok)
		seen[f] = true
	}
	assert.Len(t, seen, 3, "all multi-seed candidates should be reachable")

	_, ok = m.PickFile(99, rng)
	assert.False(t, ok)
}

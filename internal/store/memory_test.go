package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordmine/go-server/internal/session"
	"github.com/wordmine/go-server/internal/words"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := &Record{ID: "abc", Owner: "u1", Language: words.English, Level: 1, Engine: session.New()}
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Same(t, rec, got)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "abc"))
	_, err = s.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	// Delete is a no-op when absent.
	require.NoError(t, s.Delete(ctx, "abc"))
}

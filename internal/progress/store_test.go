package progress

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1) // :memory: databases are per-connection
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE level_completions (
			owner_id     TEXT    NOT NULL,
			language     TEXT    NOT NULL,
			level        INTEGER NOT NULL,
			score        INTEGER NOT NULL,
			words_found  INTEGER NOT NULL,
			total_words  INTEGER NOT NULL,
			completed_at TEXT    NOT NULL,
			UNIQUE (owner_id, language, level)
		);
		CREATE TABLE session_snapshots (
			owner_id   TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);`)
	require.NoError(t, err)
	return NewStore(db)
}

func TestRecordCompletion_BestScoreWins(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := Completion{Owner: "u1", Language: "en", Level: 3, Score: 1200, WordsFound: 8, TotalWords: 20}
	require.NoError(t, s.RecordCompletion(ctx, first))

	// A lower later score must not overwrite the record.
	worse := first
	worse.Score = 700
	worse.WordsFound = 4
	require.NoError(t, s.RecordCompletion(ctx, worse))

	got, err := s.Completions(ctx, "u1", "en")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1200, got[0].Score)
	assert.Equal(t, 8, got[0].WordsFound)

	// A higher later score does.
	better := first
	better.Score = 2500
	better.WordsFound = 15
	require.NoError(t, s.RecordCompletion(ctx, better))

	got, err = s.Completions(ctx, "u1", "en")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2500, got[0].Score)
}

func TestCompletions_PerLanguage(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordCompletion(ctx, Completion{Owner: "u1", Language: "en", Level: 2, Score: 500, WordsFound: 3, TotalWords: 10}))
	require.NoError(t, s.RecordCompletion(ctx, Completion{Owner: "u1", Language: "en", Level: 1, Score: 900, WordsFound: 5, TotalWords: 12}))
	require.NoError(t, s.RecordCompletion(ctx, Completion{Owner: "u1", Language: "de", Level: 1, Score: 100, WordsFound: 1, TotalWords: 9}))
	require.NoError(t, s.RecordCompletion(ctx, Completion{Owner: "u2", Language: "en", Level: 1, Score: 777, WordsFound: 7, TotalWords: 7}))

	got, err := s.Completions(ctx, "u1", "en")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Level, "ascending by level")
	assert.Equal(t, 2, got[1].Level)

	total, err := s.TotalScore(ctx, "u1", "en")
	require.NoError(t, err)
	assert.Equal(t, 1400, total)

	total, err = s.TotalScore(ctx, "nobody", "en")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSnapshots(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.ReadSnapshot(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoSnapshot)

	require.NoError(t, s.SaveSnapshot(ctx, "u1", []byte(`{"a":1}`)))
	got, err := s.ReadSnapshot(ctx, "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	// Replaced on save.
	require.NoError(t, s.SaveSnapshot(ctx, "u1", []byte(`{"a":2}`)))
	got, err = s.ReadSnapshot(ctx, "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(got))

	require.NoError(t, s.ClearSnapshot(ctx, "u1"))
	_, err = s.ReadSnapshot(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoSnapshot)

	// Clearing an absent snapshot is a no-op.
	require.NoError(t, s.ClearSnapshot(ctx, "u1"))
}

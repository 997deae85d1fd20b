// internal/progress/store.go
//
// Durable progress ledger over sqlite.
//
//   - Level completions: one row per (owner, language, level), best score
//     wins — a later completion with a lower score never overwrites the
//     recorded one.
//   - Session snapshots: one opaque payload per owner, replaced on save. The
//     core treats the payload as a blob; callers serialize session.Snapshot
//     into it.

package progress

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Completion is the final tally of one finished level attempt.
type Completion struct {
	Owner      string `json:"-"`
	Language   string `json:"language"`
	Level      int    `json:"level"`
	Score      int    `json:"score"`
	WordsFound int    `json:"wordsFound"`
	TotalWords int    `json:"totalWords"`
}

// ErrNoSnapshot is returned when an owner has no stored snapshot.
var ErrNoSnapshot = errors.New("progress: no snapshot")

// Store wraps the sqlite handle for progress queries.
type Store struct{ db *sql.DB }

// NewStore constructs a Store over db.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// RecordCompletion upserts a completion with best-score-wins semantics.
func (s *Store) RecordCompletion(ctx context.Context, c Completion) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO level_completions
            (owner_id, language, level, score, words_found, total_words, completed_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(owner_id, language, level) DO UPDATE SET
            score       = excluded.score,
            words_found = excluded.words_found,
            total_words = excluded.total_words,
            completed_at = excluded.completed_at
        WHERE excluded.score > level_completions.score`,
		c.Owner, c.Language, c.Level, c.Score, c.WordsFound, c.TotalWords,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Completions lists an owner's recorded completions for a language,
// ascending by level.
func (s *Store) Completions(ctx context.Context, owner, language string) ([]Completion, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT language, level, score, words_found, total_words
        FROM level_completions
        WHERE owner_id=? AND language=?
        ORDER BY level ASC`, owner, language,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Completion{}
	for rows.Next() {
		c := Completion{Owner: owner}
		if err := rows.Scan(&c.Language, &c.Level, &c.Score, &c.WordsFound, &c.TotalWords); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TotalScore sums an owner's recorded scores for a language.
func (s *Store) TotalScore(ctx context.Context, owner, language string) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `
        SELECT COALESCE(SUM(score), 0)
        FROM level_completions
        WHERE owner_id=? AND language=?`, owner, language,
	).Scan(&total)
	return total, err
}

// SaveSnapshot stores (or replaces) the owner's resume checkpoint.
func (s *Store) SaveSnapshot(ctx context.Context, owner string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO session_snapshots (owner_id, payload, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(owner_id) DO UPDATE SET
            payload = excluded.payload,
            updated_at = excluded.updated_at`,
		owner, payload, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ReadSnapshot returns the owner's checkpoint, or ErrNoSnapshot.
func (s *Store) ReadSnapshot(ctx context.Context, owner string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM session_snapshots WHERE owner_id=?`, owner,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	return payload, err
}

// ClearSnapshot drops the owner's checkpoint; no-op if absent.
func (s *Store) ClearSnapshot(ctx context.Context, owner string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_snapshots WHERE owner_id=?`, owner)
	return err
}

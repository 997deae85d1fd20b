// internal/store/memory.go
//
// In-memory store for active game sessions. A session lives here from
// POST /session/new until it is advanced (or the process restarts); durable
// progress goes through the progress package instead.
//
// Characteristics:
//   - Keeps *Record values keyed by session ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/wordmine/go-server/internal/session"
	"github.com/wordmine/go-server/internal/words"
)

// Record bundles a live engine with the identity of the attempt it serves.
type Record struct {
	ID       string
	Owner    string // user ID or anonymous cookie ID
	Language words.Language
	Level    int
	File     string // source level file, empty for synthesized levels
	Engine   *session.Engine
	Ticker   *session.Ticker
}

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for active sessions.
type Store interface {
	// Save persists or updates a session record.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a session; no-op if absent.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Record
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Record)}
}

func (m *memory) Save(ctx context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[rec.ID] = rec
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.sessions[id]; ok {
		return rec, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

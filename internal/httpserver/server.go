// internal/httpserver/server.go
//
// HTTP server wiring for the word-mining game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints (optional auth): /session/*.
//   - Level endpoints: POST /levels/generate (on-demand generator, dev tool).
//   - Auth + progress endpoints: /auth/*, /progress/me (require auth).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token
//     is present; guests play under an anonymous cookie identity.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wordmine/go-server/internal/level"
	"github.com/wordmine/go-server/internal/progress"
	"github.com/wordmine/go-server/internal/store"
	"github.com/wordmine/go-server/internal/words"
)

// Server bundles router, active-session store, progress ledger and the level
// source.
type Server struct {
	r        *chi.Mux
	sessions store.Store
	db       *sql.DB
	progress *progress.Store
	levels   level.Source

	levelSeconds int

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New constructs a Server, installs middleware, and registers routes.
func New(sessions store.Store, db *sql.DB, levels level.Source, levelSeconds int) *Server {
	s := &Server{
		r:            chi.NewRouter(),
		sessions:     sessions,
		db:           db,
		progress:     progress.NewStore(db),
		levels:       levels,
		levelSeconds: levelSeconds,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordmine-go","endpoints":["/health","POST /session/new","POST /session/submit","POST /levels/generate","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		en, de := words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"en": en, "de": de})
	})

	// Session + level endpoints — OPTIONAL AUTH (guests can play)
	s.mountSession(s.r.With(s.withOptionalAuth()))
	s.r.With(s.withOptionalAuth()).Post("/levels/generate", s.handleGenerateLevel)

	// Auth + progress (require auth where noted)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// pickRand hands out the shared rng under a lock (rand.Rand is not
// concurrency-safe).
func (s *Server) pickRand(f func(rng *rand.Rand)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	f(s.rng)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

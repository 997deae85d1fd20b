// internal/httpserver/routes_session.go
//
// HTTP routes for live game sessions. Exposes under /session:
//   - POST /session/new       → load a level and start the countdown
//   - POST /session/press     → press one letter
//   - POST /session/delete    → delete the last letter
//   - POST /session/submit    → submit the input buffer
//   - GET  /session/state     → observable session state
//   - POST /session/advance   → terminal action: record completion, drop session
//   - POST /session/snapshot  → checkpoint the session to the progress store
//   - POST /session/resume    → restore a checkpointed session
//
// Sessions are kept in memory while active; durable results go through the
// progress ledger on advance.

package httpserver

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/wordmine/go-server/internal/level"
	"github.com/wordmine/go-server/internal/progress"
	"github.com/wordmine/go-server/internal/session"
	"github.com/wordmine/go-server/internal/store"
	"github.com/wordmine/go-server/internal/words"
)

// mountSession registers all /session routes.
func (s *Server) mountSession(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/new", s.handleNewSession)
		r.Post("/press", s.handlePress)
		r.Post("/delete", s.handleDelete)
		r.Post("/submit", s.handleSubmit)
		r.Get("/state", s.handleState)
		r.Post("/advance", s.handleAdvance)
		r.Post("/snapshot", s.handleSnapshot)
		r.Post("/resume", s.handleResume)
	})
}

// ownerID returns the authenticated user ID if logged in, otherwise an
// anonymous cookie identity.
func (s *Server) ownerID(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return s.ensureAnonID(w, r)
}

// ownedSession loads the session and enforces that it belongs to the caller.
func (s *Server) ownedSession(w http.ResponseWriter, r *http.Request, id string) *store.Record {
	rec, err := s.sessions.Get(r.Context(), id)
	if err != nil || rec.Owner != s.ownerID(w, r) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil
	}
	return rec
}

// -----------------------------------------------------------------------------
// /session/new

type newSessionReq struct {
	Language string `json:"language"`
	Level    int    `json:"level"`
}
type newSessionRes struct {
	SessionID  string `json:"sessionId"`
	SeedWord   string `json:"seedWord"`
	TotalWords int    `json:"totalWords"`
	Seconds    int    `json:"seconds"`
}

// handleNewSession resolves the level (mapping/loader or built-in fallback),
// indexes it into a fresh engine and starts the countdown ticker.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	lang := words.Language(req.Language)
	if !words.Known(lang) {
		http.Error(w, `{"error":"unknown_language"}`, http.StatusBadRequest)
		return
	}

	eng := session.New()
	token := eng.StartLoad()

	var (
		lvl      *level.Level
		filename string
		err      error
	)
	s.pickRand(func(rng *rand.Rand) {
		lvl, filename, err = s.levels.Level(lang, req.Level, rng)
	})
	if err != nil {
		log.Warn().Err(err).Int("level", req.Level).Str("lang", req.Language).Msg("level load failed")
		http.Error(w, `{"error":"level_load_failed"}`, http.StatusNotFound)
		return
	}
	eng.ApplyLoad(token, lvl, s.levelSeconds)
	log.Debug().Str("file", filename).Str("seed", lvl.SeedWord).Int("level", req.Level).Msg("session level resolved")

	rec := &store.Record{
		ID:       genID(),
		Owner:    s.ownerID(w, r),
		Language: lang,
		Level:    req.Level,
		File:     filename,
		Engine:   eng,
		Ticker:   session.StartTicker(eng),
	}
	if err := s.sessions.Save(r.Context(), rec); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	v := eng.View()
	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID:  rec.ID,
		SeedWord:   v.SeedWord,
		TotalWords: v.TotalWords,
		Seconds:    v.Remaining,
	})
}

// -----------------------------------------------------------------------------
// input actions

type sessionActionReq struct {
	SessionID string `json:"sessionId"`
	Letter    string `json:"letter,omitempty"`
}

func (s *Server) handlePress(w http.ResponseWriter, r *http.Request) {
	var req sessionActionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rec := s.ownedSession(w, r, req.SessionID)
	if rec == nil {
		return
	}
	letter, _ := utf8.DecodeRuneInString(req.Letter)
	if letter != utf8.RuneError {
		rec.Engine.PressLetter(letter)
	}
	_ = json.NewEncoder(w).Encode(rec.Engine.View())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req sessionActionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rec := s.ownedSession(w, r, req.SessionID)
	if rec == nil {
		return
	}
	rec.Engine.Delete()
	_ = json.NewEncoder(w).Encode(rec.Engine.View())
}

type submitRes struct {
	Result session.SubmitResult `json:"result"`
	State  session.View         `json:"state"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req sessionActionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rec := s.ownedSession(w, r, req.SessionID)
	if rec == nil {
		return
	}
	result := rec.Engine.Submit()
	_ = json.NewEncoder(w).Encode(submitRes{Result: result, State: rec.Engine.View()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	rec := s.ownedSession(w, r, r.URL.Query().Get("sessionId"))
	if rec == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(rec.Engine.View())
}

// -----------------------------------------------------------------------------
// /session/advance

type advanceRes struct {
	Phase      session.Phase `json:"phase"`
	Score      int           `json:"score"`
	WordsFound int           `json:"wordsFound"`
	TotalWords int           `json:"totalWords"`
	TotalScore int           `json:"totalScore"`
	Stars      int           `json:"stars"`
}

// handleAdvance is the explicit "next level" action required to leave a
// terminal phase. It completes a still-active session, records the final
// tally in the progress ledger (best effort), clears any checkpoint and
// drops the session.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req sessionActionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rec := s.ownedSession(w, r, req.SessionID)
	if rec == nil {
		return
	}
	rec.Engine.Complete()
	rec.Ticker.Stop()
	v := rec.Engine.View()

	if err := s.progress.RecordCompletion(r.Context(), progress.Completion{
		Owner:      rec.Owner,
		Language:   string(rec.Language),
		Level:      rec.Level,
		Score:      v.Score,
		WordsFound: v.WordsFound,
		TotalWords: v.TotalWords,
	}); err != nil {
		log.Warn().Err(err).Str("sessionId", rec.ID).Msg("record completion")
	}
	if err := s.progress.ClearSnapshot(r.Context(), rec.Owner); err != nil {
		log.Warn().Err(err).Msg("clear snapshot")
	}
	_ = s.sessions.Delete(r.Context(), rec.ID)

	total, err := s.progress.TotalScore(r.Context(), rec.Owner, string(rec.Language))
	if err != nil {
		log.Warn().Err(err).Msg("total score")
	}
	_ = json.NewEncoder(w).Encode(advanceRes{
		Phase:      v.Phase,
		Score:      v.Score,
		WordsFound: v.WordsFound,
		TotalWords: v.TotalWords,
		TotalScore: total,
		Stars:      session.Stars(total),
	})
}

// -----------------------------------------------------------------------------
// checkpointing

// snapshotPayload wraps the engine snapshot with enough identity to rebuild
// the level on resume. The progress store treats it as an opaque blob.
type snapshotPayload struct {
	Language words.Language   `json:"language"`
	Level    int              `json:"level"`
	File     string           `json:"file,omitempty"`
	Snapshot session.Snapshot `json:"snapshot"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var req sessionActionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rec := s.ownedSession(w, r, req.SessionID)
	if rec == nil {
		return
	}
	payload, err := json.Marshal(snapshotPayload{
		Language: rec.Language,
		Level:    rec.Level,
		File:     rec.File,
		Snapshot: rec.Engine.Snapshot(),
	})
	if err != nil {
		http.Error(w, `{"error":"snapshot_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := s.progress.SaveSnapshot(r.Context(), rec.Owner, payload); err != nil {
		http.Error(w, `{"error":"snapshot_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// fileSource is implemented by level sources that can reload a specific
// level file (the directory loader can; the built-in builder cannot).
type fileSource interface {
	LevelFile(lang words.Language, filename string) (*level.Level, error)
}

// handleResume rebuilds a session from the caller's checkpoint. Authored
// levels reload the exact file the checkpoint was taken against; synthesized
// levels are regenerated from the snapshot's seed word.
func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	owner := s.ownerID(w, r)
	payload, err := s.progress.ReadSnapshot(r.Context(), owner)
	if errors.Is(err, progress.ErrNoSnapshot) {
		http.Error(w, `{"error":"no_snapshot"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"read_failed"}`, http.StatusInternalServerError)
		return
	}
	var snap snapshotPayload
	if err := json.Unmarshal(payload, &snap); err != nil {
		http.Error(w, `{"error":"bad_snapshot"}`, http.StatusInternalServerError)
		return
	}

	var lvl *level.Level
	if fsrc, ok := s.levels.(fileSource); ok && snap.File != "" {
		if lvl, err = fsrc.LevelFile(snap.Language, snap.File); err != nil {
			log.Warn().Err(err).Str("file", snap.File).Msg("resume level load failed")
			http.Error(w, `{"error":"level_load_failed"}`, http.StatusNotFound)
			return
		}
	} else {
		lvl = level.Build(snap.Snapshot.SeedWord, words.Dictionary(snap.Language), snap.Language)
	}

	eng := session.New()
	token := eng.StartLoad()
	eng.ApplyLoad(token, lvl, s.levelSeconds)
	if err := eng.Restore(snap.Snapshot); err != nil {
		http.Error(w, `{"error":"bad_snapshot"}`, http.StatusInternalServerError)
		return
	}

	rec := &store.Record{
		ID:       genID(),
		Owner:    owner,
		Language: snap.Language,
		Level:    snap.Level,
		File:     snap.File,
		Engine:   eng,
		Ticker:   session.StartTicker(eng),
	}
	if err := s.sessions.Save(r.Context(), rec); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	v := eng.View()
	_ = json.NewEncoder(w).Encode(struct {
		SessionID string       `json:"sessionId"`
		State     session.View `json:"state"`
	}{SessionID: rec.ID, State: v})
}

// -----------------------------------------------------------------------------
// /levels/generate (developer tool)

type generateReq struct {
	SeedWord string `json:"seed_word"`
	Language string `json:"language"`
}

// handleGenerateLevel runs the generator on demand and returns the level
// file shape. The seed must be ≥3 letters of the language's alphabet.
func (s *Server) handleGenerateLevel(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	lang := words.Language(req.Language)
	if !words.Known(lang) {
		http.Error(w, `{"error":"unknown_language"}`, http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(req.SeedWord) < words.MinWordLength || !words.IsAlpha(req.SeedWord, lang) {
		http.Error(w, `{"error":"invalid_seed_word"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(level.Build(req.SeedWord, words.Dictionary(lang), lang))
}

// internal/session/session.go
//
// Session engine for a single level attempt.
// Responsibilities:
//   - Index a loaded level (lowercase word → entry, seed letter budget).
//   - Gate letter presses against the seed's letter budget.
//   - Evaluate submissions: already-found / miss / accepted, with streak and
//     straight bonuses.
//   - Drive the countdown and the phase transitions:
//     loading → active → (time_expired | level_complete).
//
// All state is owned by one Engine instance; every method takes the engine
// lock, so timer ticks and input actions are serialized and never interleave
// partially. Terminal phases only advance via an explicit external action —
// finding every word does not end the level early; the player may keep
// playing until the clock runs out.

package session

import (
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/wordmine/go-server/internal/generate"
	"github.com/wordmine/go-server/internal/level"
)

// Phase is the coarse state of one level attempt.
type Phase string

const (
	PhaseLoading       Phase = "loading"
	PhaseActive        Phase = "active"
	PhaseTimeExpired   Phase = "time_expired"
	PhaseLevelComplete Phase = "level_complete"
)

// BonusType tags which bonus rule fired for a submission.
type BonusType string

const (
	BonusNone     BonusType = "none"
	BonusStreak   BonusType = "streak"   // consecutive equal word lengths
	BonusStraight BonusType = "straight" // lengths increasing by exactly one
)

// Bonus describes the bonus awarded with one accepted word.
type Bonus struct {
	Type   BonusType `json:"type"`
	Amount int       `json:"amount"`
	Count  int       `json:"count"`
}

// FoundWord records one successful submission. Immutable after creation.
type FoundWord struct {
	Word  string `json:"word"` // display form from the level file
	Score int    `json:"score"`
	Bonus Bonus  `json:"bonus"`
}

// Outcome classifies a submission.
type Outcome string

const (
	OutcomeAccepted     Outcome = "accepted"
	OutcomeAlreadyFound Outcome = "already_found"
	OutcomeMiss         Outcome = "miss"
)

// SubmitResult is returned by Submit.
type SubmitResult struct {
	Outcome    Outcome `json:"outcome"`
	Word       string  `json:"word"` // lowercased submitted buffer
	Score      int     `json:"score"`
	Bonus      Bonus   `json:"bonus"`
	TotalScore int     `json:"totalScore"`
}

// View is a copy of the observable session state.
type View struct {
	Phase      Phase       `json:"phase"`
	SeedWord   string      `json:"seedWord"`
	Buffer     string      `json:"buffer"`
	Found      []FoundWord `json:"found"` // most recent first
	Score      int         `json:"score"`
	Remaining  int         `json:"remaining"`
	WordsFound int         `json:"wordsFound"`
	TotalWords int         `json:"totalWords"`
	Invalid    bool        `json:"invalid"`
}

// invalidFlagDuration is how long the transient "invalid" flag stays raised
// after a rejected submission. Presentation only; it never affects scoring.
const invalidFlagDuration = 5 * time.Second

// Engine holds the state of one level attempt. Zero value is not usable;
// construct with New.
type Engine struct {
	mu  sync.Mutex
	now func() time.Time // injected for tests

	phase     Phase
	loadToken uint64

	seedWord string // display form from the level file
	budget   generate.CharMap
	entries  map[string]generate.WordResult // lowercase word → entry

	buffer        []rune
	found         []FoundWord // most recent first
	foundSet      map[string]struct{}
	score         int
	remaining     int
	lastWordLen   int // 0 = no prior word this session
	streakCount   int
	straightCount int
	invalidUntil  time.Time
}

// New constructs an Engine in the loading phase.
func New() *Engine {
	return &Engine{phase: PhaseLoading, now: time.Now}
}

// SetClock replaces the time source (tests).
func (e *Engine) SetClock(now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// StartLoad announces a new level load and returns its token. Any load
// already in flight becomes stale: ApplyLoad with an older token is dropped
// (last-load-wins). The engine returns to the loading phase and stops
// accepting input until the load lands.
func (e *Engine) StartLoad() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadToken++
	e.phase = PhaseLoading
	return e.loadToken
}

// ApplyLoad indexes the fetched level and activates the session with the
// given countdown. Returns false if token is stale (a newer load started).
func (e *Engine) ApplyLoad(token uint64, lvl *level.Level, seconds int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if token != e.loadToken {
		return false
	}
	entries := make(map[string]generate.WordResult, len(lvl.WordsList))
	for _, wr := range lvl.WordsList {
		entries[strings.ToLower(wr.Word)] = wr
	}
	e.seedWord = lvl.SeedWord
	e.budget = generate.NewCharMap(lvl.SeedWord)
	e.entries = entries
	e.buffer = nil
	e.found = nil
	e.foundSet = make(map[string]struct{}, len(entries))
	e.score = 0
	e.remaining = seconds
	e.lastWordLen = 0
	e.streakCount = 0
	e.straightCount = 0
	e.invalidUntil = time.Time{}
	e.phase = PhaseActive
	return true
}

// PressLetter appends letter to the input buffer if the seed budget still
// covers it; otherwise it is silently ignored. No-op outside the active
// phase.
func (e *Engine) PressLetter(letter rune) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseActive {
		return
	}
	r := toLowerRune(letter)
	used := 0
	for _, b := range e.buffer {
		if b == r {
			used++
		}
	}
	if used < e.budget.Count(r) {
		e.buffer = append(e.buffer, r)
	}
}

// Delete removes the last buffered letter; no-op on an empty buffer.
func (e *Engine) Delete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseActive || len(e.buffer) == 0 {
		return
	}
	e.buffer = e.buffer[:len(e.buffer)-1]
}

// Submit evaluates the current buffer and clears it unconditionally.
// Outcomes:
//   - already found: raises the invalid flag, nothing else changes
//   - miss (not in the word list): raises the invalid flag and breaks any
//     active streak/straight (both counters to 0)
//   - accepted: bonus per applyBonus, word added to the found list, score
//     accumulated
func (e *Engine) Submit() SubmitResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	word := strings.ToLower(string(e.buffer))
	e.buffer = nil

	if e.phase != PhaseActive {
		return SubmitResult{Outcome: OutcomeMiss, Word: word, Bonus: Bonus{Type: BonusNone}, TotalScore: e.score}
	}

	if _, dup := e.foundSet[word]; dup {
		e.invalidUntil = e.now().Add(invalidFlagDuration)
		return SubmitResult{Outcome: OutcomeAlreadyFound, Word: word, Bonus: Bonus{Type: BonusNone}, TotalScore: e.score}
	}
	entry, ok := e.entries[word]
	if !ok {
		e.invalidUntil = e.now().Add(invalidFlagDuration)
		e.streakCount = 0
		e.straightCount = 0
		return SubmitResult{Outcome: OutcomeMiss, Word: word, Bonus: Bonus{Type: BonusNone}, TotalScore: e.score}
	}

	bonus := e.applyBonus(utf8.RuneCountInString(word))
	fw := FoundWord{Word: entry.Word, Score: entry.CombinedScore, Bonus: bonus}
	e.found = append([]FoundWord{fw}, e.found...)
	e.foundSet[word] = struct{}{}
	e.score += entry.CombinedScore + bonus.Amount
	return SubmitResult{
		Outcome:    OutcomeAccepted,
		Word:       word,
		Score:      entry.CombinedScore,
		Bonus:      bonus,
		TotalScore: e.score,
	}
}

// applyBonus updates the streak/straight counters for an accepted word of
// newLen letters and returns the awarded bonus. Compared against the
// previous word's length:
//   - equal length continues a streak: 50 points per prior streak step
//   - length+1 continues a straight: 100 points per prior straight step
//   - anything else (first word, jump, decrease) resets both counters to 1;
//     only a miss resets them to 0
func (e *Engine) applyBonus(newLen int) Bonus {
	b := Bonus{Type: BonusNone}
	switch {
	case e.lastWordLen > 0 && newLen == e.lastWordLen:
		e.streakCount++
		e.straightCount = 1
		if e.streakCount >= 2 {
			b = Bonus{Type: BonusStreak, Amount: (e.streakCount - 1) * 50, Count: e.streakCount}
		}
	case e.lastWordLen > 0 && newLen == e.lastWordLen+1:
		e.straightCount++
		e.streakCount = 1
		if e.straightCount >= 2 {
			b = Bonus{Type: BonusStraight, Amount: (e.straightCount - 1) * 100, Count: e.straightCount}
		}
	default:
		e.streakCount = 1
		e.straightCount = 1
	}
	e.lastWordLen = newLen
	return b
}

// Tick advances the countdown by one second. Returns false once the engine
// is no longer active (the caller's ticker should stop). The countdown never
// goes negative; reaching 0 transitions to the time-expired phase.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseActive {
		return false
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining <= 0 {
		e.remaining = 0
		e.phase = PhaseTimeExpired
		return false
	}
	return true
}

// Complete transitions an active session to the level-complete phase.
// Triggered only by an explicit external action, never by finding all words.
func (e *Engine) Complete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase == PhaseActive {
		e.phase = PhaseLevelComplete
	}
}

// View returns a copy of the observable state.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	found := make([]FoundWord, len(e.found))
	copy(found, e.found)
	return View{
		Phase:      e.phase,
		SeedWord:   e.seedWord,
		Buffer:     string(e.buffer),
		Found:      found,
		Score:      e.score,
		Remaining:  e.remaining,
		WordsFound: len(e.found),
		TotalWords: len(e.entries),
		Invalid:    e.now().Before(e.invalidUntil),
	}
}

// Snapshot is a serializable resume checkpoint of one session.
type Snapshot struct {
	SeedWord       string      `json:"seedWord"`
	Buffer         string      `json:"buffer"`
	Found          []FoundWord `json:"found"`
	Score          int         `json:"score"`
	Remaining      int         `json:"remaining"`
	LastWordLength int         `json:"lastWordLength"`
	StreakCount    int         `json:"streakCount"`
	StraightCount  int         `json:"straightCount"`
}

// Snapshot captures the current session state for external checkpointing.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	found := make([]FoundWord, len(e.found))
	copy(found, e.found)
	return Snapshot{
		SeedWord:       e.seedWord,
		Buffer:         string(e.buffer),
		Found:          found,
		Score:          e.score,
		Remaining:      e.remaining,
		LastWordLength: e.lastWordLen,
		StreakCount:    e.streakCount,
		StraightCount:  e.straightCount,
	}
}

// ErrSeedMismatch reports a snapshot taken against a different level.
var ErrSeedMismatch = errors.New("session: snapshot seed word does not match loaded level")

// Restore overlays a snapshot onto a freshly loaded session. The level must
// already be applied (ApplyLoad) and carry the same seed word.
func (e *Engine) Restore(s Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseActive {
		return errors.New("session: restore requires an active session")
	}
	if !strings.EqualFold(s.SeedWord, e.seedWord) {
		return ErrSeedMismatch
	}
	e.buffer = []rune(s.Buffer)
	e.found = make([]FoundWord, len(s.Found))
	copy(e.found, s.Found)
	e.foundSet = make(map[string]struct{}, len(s.Found))
	for _, fw := range s.Found {
		e.foundSet[strings.ToLower(fw.Word)] = struct{}{}
	}
	e.score = s.Score
	e.remaining = s.Remaining
	e.lastWordLen = s.LastWordLength
	e.streakCount = s.StreakCount
	e.straightCount = s.StraightCount
	if e.remaining <= 0 {
		e.remaining = 0
		e.phase = PhaseTimeExpired
	}
	return nil
}

// toLowerRune lowercases ASCII letters and the German capital umlauts.
func toLowerRune(r rune) rune {
	switch {
	case r >= 'A' && r <= 'Z':
		return r + ('a' - 'A')
	case r == 'Ä':
		return 'ä'
	case r == 'Ö':
		return 'ö'
	case r == 'Ü':
		return 'ü'
	}
	return r
}

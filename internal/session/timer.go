// internal/session/timer.go
//
// Countdown driver: a 1 Hz ticker that feeds Engine.Tick until the engine
// reports it is no longer active. Kept separate from the session state so the
// two cooperate through the engine's own serialization (every Tick takes the
// engine lock, same as input actions).

package session

import (
	"sync"
	"time"
)

// Ticker drives one engine's countdown.
type Ticker struct {
	stop     chan struct{}
	stopOnce sync.Once
}

// StartTicker begins ticking e once per second in a background goroutine.
// The goroutine exits when the engine leaves the active phase or Stop is
// called.
func StartTicker(e *Engine) *Ticker {
	t := &Ticker{stop: make(chan struct{})}
	go t.run(e)
	return t
}

func (t *Ticker) run(e *Engine) {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-tick.C:
			if !e.Tick() {
				return
			}
		}
	}
}

// Stop halts the ticker. Safe to call more than once.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

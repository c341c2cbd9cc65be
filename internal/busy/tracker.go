// Package busy tracks in-flight operations with a reference-counted scope.
// Nested operations each hold their own token, so an inner operation
// finishing never clears the busy state of an outer one.
package busy

import (
	"sync"
	"time"
)

type Tracker struct {
	mu     sync.Mutex
	nextID uint64
	active map[uint64]entry
}

type entry struct {
	message string
	started time.Time
}

type Token struct {
	tracker *Tracker
	id      uint64
	once    sync.Once
}

type Snapshot struct {
	Busy    bool   `json:"busy"`
	Message string `json:"message,omitempty"`
	Active  int    `json:"active"`
}

func NewTracker() *Tracker {
	return &Tracker{active: make(map[uint64]entry)}
}

// Begin opens a scope with message. The caller must End the returned token.
func (t *Tracker) Begin(message string) *Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	id := t.nextID
	t.active[id] = entry{message: message, started: time.Now()}
	return &Token{tracker: t, id: id}
}

// End closes the scope. Calling it more than once is a no-op.
func (tok *Token) End() {
	tok.once.Do(func() {
		tok.tracker.mu.Lock()
		defer tok.tracker.mu.Unlock()
		delete(tok.tracker.active, tok.id)
	})
}

func (t *Tracker) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active) > 0
}

// Message returns the message of the most recently opened active scope.
func (t *Tracker) Message() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.messageLocked()
}

func (t *Tracker) messageLocked() string {
	var latest uint64
	message := ""
	for id, e := range t.active {
		if id > latest {
			latest = id
			message = e.message
		}
	}
	return message
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Busy:    len(t.active) > 0,
		Message: t.messageLocked(),
		Active:  len(t.active),
	}
}

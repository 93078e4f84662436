package net

import (
	"sync"

	"github.com/google/uuid"
)

// Session is this process's identity on the wire plus a record of every
// stroke message it has already applied. Relayed messages can arrive
// more than once on reconnect; the seen set makes applying them
// idempotent.
type Session struct {
	ID   string
	mu   sync.Mutex
	seen map[string]bool
}

// NewSession creates a session with a fresh random identity.
func NewSession() *Session {
	return &Session{
		ID:   uuid.NewString(),
		seen: make(map[string]bool),
	}
}

// Stamp fills in a fresh message ID and this session's owner ID, and
// marks the message as already seen locally.
func (s *Session) Stamp(msg *Message) {
	msg.ID = uuid.NewString()
	msg.OwnerID = s.ID

	s.mu.Lock()
	s.seen[msg.ID] = true
	s.mu.Unlock()
}

// FirstSighting records the message ID and reports whether it had not
// been seen before. Callers apply a message only on the first sighting.
func (s *Session) FirstSighting(id string) bool {
	if id == "" {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[id] {
		return false
	}
	s.seen[id] = true
	return true
}

// SeenCount returns how many message IDs this session has recorded.
func (s *Session) SeenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

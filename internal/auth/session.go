package auth

import (
	"sync"

	"github.com/sandeshlamsal/eventpasal/internal/domain"
)

type AuthEvent string

const (
	SignedIn  AuthEvent = "SIGNED_IN"
	SignedOut AuthEvent = "SIGNED_OUT"
)

// Change is delivered to subscribers on every session transition. Session is
// set only for SIGNED_IN.
type Change struct {
	Event   AuthEvent
	Session *domain.Session
}

// SessionStore holds the process-wide current session. It has exactly one
// writer (the auth service) and any number of readers and subscribers; the
// snapshot is replaced wholesale on every change, never mutated in place.
type SessionStore struct {
	mu      sync.RWMutex
	current *domain.Session
	subs    map[int]chan Change
	nextID  int
}

func NewSessionStore() *SessionStore {
	return &SessionStore{subs: make(map[int]chan Change)}
}

// Current returns the session snapshot, or nil when signed out.
func (s *SessionStore) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers a listener for session changes. The returned cancel
// func must be called on teardown to release the listener.
func (s *SessionStore) Subscribe() (<-chan Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Change, 4)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *SessionStore) set(sess *domain.Session, event AuthEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = sess
	for _, sub := range s.subs {
		// Slow subscribers drop changes rather than block the writer.
		select {
		case sub <- Change{Event: event, Session: sess}:
		default:
		}
	}
}

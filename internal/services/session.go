package services

import "sync"

// AwaitState marks what the next free-text message from a chat means.
type AwaitState int

const (
	StateIdle AwaitState = iota
	StateAwaitingPassengerName
	StateAwaitingDriverName
	StateAwaitingNote
)

// SessionStore keeps per-chat conversation state. The state is ephemeral:
// it does not survive a restart and is consumed exactly once, so a stale
// prompt can never swallow an unrelated later message twice.
type SessionStore struct {
	mu     sync.Mutex
	states map[int64]AwaitState
}

func NewSessionStore() *SessionStore {
	return &SessionStore{states: make(map[int64]AwaitState)}
}

func (s *SessionStore) Set(chatID int64, state AwaitState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == StateIdle {
		delete(s.states, chatID)
		return
	}
	s.states[chatID] = state
}

// Consume returns the pending state and clears it in the same step.
func (s *SessionStore) Consume(chatID int64) AwaitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[chatID]
	if !ok {
		return StateIdle
	}
	delete(s.states, chatID)
	return state
}

// Peek reports the pending state without consuming it.
func (s *SessionStore) Peek(chatID int64) AwaitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[chatID]
	if !ok {
		return StateIdle
	}
	return state
}

func (s *SessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}

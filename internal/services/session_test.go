package services

import "testing"

func TestSessionConsumeClearsExactlyOnce(t *testing.T) {
	s := NewSessionStore()
	s.Set(1, StateAwaitingDriverName)

	if got := s.Consume(1); got != StateAwaitingDriverName {
		t.Fatalf("first consume = %v", got)
	}
	if got := s.Consume(1); got != StateIdle {
		t.Fatalf("second consume should be idle, got %v", got)
	}
}

func TestSessionIsolatedPerChat(t *testing.T) {
	s := NewSessionStore()
	s.Set(1, StateAwaitingNote)

	if got := s.Peek(2); got != StateIdle {
		t.Fatalf("state leaked across chats: %v", got)
	}
	if got := s.Peek(1); got != StateAwaitingNote {
		t.Fatalf("state lost for owning chat: %v", got)
	}
}

func TestSessionSetIdleClears(t *testing.T) {
	s := NewSessionStore()
	s.Set(1, StateAwaitingPassengerName)
	s.Set(1, StateIdle)

	if got := s.Consume(1); got != StateIdle {
		t.Fatalf("expected idle after explicit clear, got %v", got)
	}
}

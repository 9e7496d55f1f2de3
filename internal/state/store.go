package state

import (
	"context"
	"errors"
)

var (
	ErrContextNotFound = errors.New("conversation context not found")
	ErrInvalidSession  = errors.New("session id is empty")
)

// Entry is one named conversation context. RemainingTurns counts how many
// conversational turns the entry survives; the hosting channel decrements it
// once per turn via Tick and evicts entries that reach zero.
type Entry struct {
	Parameters     map[string]any `json:"parameters"`
	RemainingTurns int            `json:"remaining_turns"`
}

// Store is a per-session context store with turn-based expiry.
//
// Set always overwrites, resetting the lifespan. Get never mutates the
// remaining turn count and returns ErrContextNotFound for absent or expired
// entries. Tick is the per-turn decrement across all of a session's entries.
type Store interface {
	Set(ctx context.Context, sessionID, name string, params map[string]any, lifespan int) error
	Get(ctx context.Context, sessionID, name string) (map[string]any, error)
	Tick(ctx context.Context, sessionID string) error
	Clear(ctx context.Context, sessionID string) error
}

// Session binds a Store to one conversation session. Handlers only ever see
// this session-scoped view, never the raw store.
type Session struct {
	store Store
	id    string
}

func NewSession(store Store, sessionID string) *Session {
	return &Session{store: store, id: sessionID}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Set(ctx context.Context, name string, params map[string]any, lifespan int) error {
	return s.store.Set(ctx, s.id, name, params, lifespan)
}

func (s *Session) Get(ctx context.Context, name string) (map[string]any, error) {
	return s.store.Get(ctx, s.id, name)
}

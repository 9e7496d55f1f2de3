package state

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps contexts in process memory. Used by tests and local runs
// without Redis. Safe for concurrent sessions; turns within one session are
// assumed to be serialized by the hosting channel.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]map[string]*Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]*Entry)}
}

func (m *MemoryStore) Set(ctx context.Context, sessionID, name string, params map[string]any, lifespan int) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	contexts, ok := m.sessions[sessionID]
	if !ok {
		contexts = make(map[string]*Entry, 2)
		m.sessions[sessionID] = contexts
	}
	contexts[name] = &Entry{Parameters: params, RemainingTurns: lifespan}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, sessionID, name string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	contexts, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrContextNotFound
	}
	entry, ok := contexts[name]
	if !ok || entry.RemainingTurns <= 0 {
		return nil, ErrContextNotFound
	}
	return entry.Parameters, nil
}

func (m *MemoryStore) Tick(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	contexts, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	for name, entry := range contexts {
		entry.RemainingTurns--
		if entry.RemainingTurns <= 0 {
			delete(contexts, name)
		}
	}
	if len(contexts) == 0 {
		delete(m.sessions, sessionID)
	}
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

var _ Store = (*MemoryStore)(nil)

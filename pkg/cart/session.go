package cart

import (
	"context"
	"errors"
	"sync"
)

var ErrSessionNotFound = errors.New("cart session not found")

// Sessions hands out a Store scoped to one server-side cart session.
type Sessions interface {
	Create(ctx context.Context, sessionID string) error
	Open(ctx context.Context, sessionID string) (Store, error)
}

// MemorySessions keeps every session in process memory. Sessions never expire.
type MemorySessions struct {
	mu     sync.Mutex
	stores map[string]*MemoryStore
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{stores: make(map[string]*MemoryStore)}
}

func (m *MemorySessions) Create(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stores[sessionID]; !ok {
		m.stores[sessionID] = NewMemoryStore()
	}
	return nil
}

func (m *MemorySessions) Open(ctx context.Context, sessionID string) (Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return store, nil
}

package cart

import (
	"context"
	"sync"
)

// MemoryStore is an in-process EphemeralStore. It backs anonymous sessions
// when the process itself is the visitor's device boundary, and doubles as
// the test double for the file-backed store.
type MemoryStore struct {
	mu    sync.Mutex
	lines []EphemeralLine
}

// NewMemoryStore creates an empty in-memory ephemeral store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored records.
func (s *MemoryStore) Load(_ context.Context) ([]EphemeralLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]EphemeralLine, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

// Save replaces the stored records.
func (s *MemoryStore) Save(_ context.Context, lines []EphemeralLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make([]EphemeralLine, len(lines))
	copy(s.lines, lines)
	return nil
}

// Clear discards all records.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	return nil
}

// MemoryProvider hands out one MemoryStore per session id.
type MemoryProvider struct {
	stores sync.Map
}

// NewMemoryProvider creates a provider of in-memory session stores.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

// ForSession returns the store for the session, creating it on first use.
func (p *MemoryProvider) ForSession(sessionID string) EphemeralStore {
	store, _ := p.stores.LoadOrStore(sessionID, NewMemoryStore())
	return store.(*MemoryStore)
}

// Drop forgets a session's store, e.g. after its lines were merged into the
// durable cart and the session has ended.
func (p *MemoryProvider) Drop(sessionID string) {
	p.stores.Delete(sessionID)
}

// Package memory provides an in-memory MemoryStore, suitable for tests and
// single-process hosts.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/kestrel/pkg/domain"
)

// Store implements ports.MemoryStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Memory
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Memory),
	}
}

// Save persists a snapshot of the memory.
func (s *Store) Save(ctx context.Context, sessionID string, mem domain.Memory) error {
	snapshot := mem.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = snapshot
	return nil
}

// Load retrieves the memory. The caller gets a copy so it cannot mutate the
// stored snapshot by reference.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mem, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrMemoryNotFound
	}
	return mem.Clone(), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the stored session IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}

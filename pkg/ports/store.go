package ports

import (
	"context"

	"github.com/aretw0/kestrel/pkg/domain"
)

// MemoryStore defines the interface for persisting workflow memory between
// independent kernel invocations. The kernel itself never waits: an async
// service parks the memory here, and its callback later loads it back and
// re-enters via a fresh Execute call.
type MemoryStore interface {
	// Save persists the memory snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, mem domain.Memory) error

	// Load retrieves the memory for a given session ID.
	// Returns domain.ErrMemoryNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (domain.Memory, error)

	// Delete removes the memory for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the session IDs currently held by the store.
	List(ctx context.Context) ([]string, error)
}

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/kestrel/internal/logging"
	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/aretw0/kestrel/pkg/ports"
	"github.com/google/uuid"
)

// Executor is the slice of the kernel the manager needs to resume a
// continuation workflow.
type Executor interface {
	Execute(ctx context.Context, wf domain.Workflow, mem domain.Memory) (domain.Memory, error)
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu     sync.Mutex
	refs   int
	unlock ports.UnlockFunc
}

// Manager orchestrates session memory access, ensuring safe concurrent
// operations. It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.MemoryStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.DistributedLocker
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new session Manager with the given persistence store.
func NewManager(store ports.MemoryStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewID generates a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu and call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Load retrieves an existing session memory from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (domain.Memory, error) {
	var mem domain.Memory
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		mem, err = m.store.Load(ctx, sessionID)
		return err
	})
	return mem, err
}

// LoadOrSeed tries to load a session memory. If not found, it initializes
// one from the seed and persists it immediately to reserve the ID.
func (m *Manager) LoadOrSeed(ctx context.Context, sessionID string, seed domain.Memory) (domain.Memory, error) {
	var mem domain.Memory
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		mem, err = m.store.Load(ctx, sessionID)
		if err == nil {
			return nil
		}
		if err != domain.ErrMemoryNotFound {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		mem = domain.Memory{}
		if seed != nil {
			mem.Merge(seed)
		}
		if err := m.store.Save(ctx, sessionID, mem); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	return mem, err
}

// Save persists the session memory.
func (m *Manager) Save(ctx context.Context, sessionID string, mem domain.Memory) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, mem)
	})
}

// Resume loads the parked memory for a session, re-enters the kernel with a
// continuation workflow, and persists the resulting memory. This is the
// sanctioned path for asynchronous services: their callback calls Resume
// instead of awaiting inside the original execution.
func (m *Manager) Resume(ctx context.Context, exec Executor, sessionID string, continuation domain.Workflow) (domain.Memory, error) {
	var mem domain.Memory
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		loaded, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}

		mem, err = exec.Execute(ctx, continuation, loaded)
		if err != nil {
			return err
		}
		return m.store.Save(ctx, sessionID, mem)
	})
	return mem, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying memory store.
func (m *Manager) Store() ports.MemoryStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, 30*time.Second)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

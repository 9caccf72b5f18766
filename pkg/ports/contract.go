package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMemoryStoreContract runs a suite of tests verifying that a MemoryStore
// implementation adheres to the interface contract. Adapter packages call it
// from their own tests against a live backend (or a fake such as miniredis).
func RunMemoryStoreContract(t *testing.T, store MemoryStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		mem := domain.Memory{"user": "ada", "count": 42}
		mem.SetValid(true)

		err := store.Save(ctx, sessionID, mem)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, loaded.Valid())
		assert.Equal(t, "ada", loaded["user"])
		// JSON-backed stores may widen numeric types; only existence is
		// part of the contract.
		assert.NotNil(t, loaded["count"])
	})

	t.Run("Isolation", func(t *testing.T) {
		mem := domain.Memory{"key": "original"}
		require.NoError(t, store.Save(ctx, sessionID, mem))

		// Mutating the saved memory must not leak into the store.
		mem["key"] = "mutated"

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "original", loaded["key"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrMemoryNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.Memory{"x": 1}))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrMemoryNotFound, "Load after Delete should return ErrMemoryNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.Memory{})
		_ = store.Save(ctx, id2, domain.Memory{})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhive/workhive-api/internal/store"
	"github.com/workhive/workhive-api/internal/workspace"
)

func TestWorkspaceMemoryStore(t *testing.T) {
	newWorkspace := func(id string) *workspace.Workspace {
		return &workspace.Workspace{
			ID:        id,
			Name:      "Acme",
			Plan:      "starter",
			CreatedAt: time.Now(),
		}
	}

	t.Run("creates and gets a workspace", func(t *testing.T) {
		s := store.NewWorkspaceMemoryStore()

		require.NoError(t, s.Create(context.Background(), newWorkspace("ws1")))

		ws, err := s.Get(context.Background(), "ws1")

		require.NoError(t, err)
		assert.Equal(t, "Acme", ws.Name)
	})

	t.Run("returns ErrNotFound for unknown ids", func(t *testing.T) {
		s := store.NewWorkspaceMemoryStore()

		_, err := s.Get(context.Background(), "missing")

		assert.ErrorIs(t, err, workspace.ErrNotFound)
	})

	t.Run("updates an existing workspace", func(t *testing.T) {
		s := store.NewWorkspaceMemoryStore()

		require.NoError(t, s.Create(context.Background(), newWorkspace("ws1")))

		ws, _ := s.Get(context.Background(), "ws1")
		ws.Plan = "pro"

		require.NoError(t, s.Update(context.Background(), ws))

		updated, err := s.Get(context.Background(), "ws1")
		require.NoError(t, err)
		assert.Equal(t, "pro", updated.Plan)
	})

	t.Run("update of a missing workspace fails", func(t *testing.T) {
		s := store.NewWorkspaceMemoryStore()

		err := s.Update(context.Background(), newWorkspace("missing"))

		assert.ErrorIs(t, err, workspace.ErrNotFound)
	})

	t.Run("deletes a workspace", func(t *testing.T) {
		s := store.NewWorkspaceMemoryStore()

		require.NoError(t, s.Create(context.Background(), newWorkspace("ws1")))
		require.NoError(t, s.Delete(context.Background(), "ws1"))

		_, err := s.Get(context.Background(), "ws1")
		assert.ErrorIs(t, err, workspace.ErrNotFound)
	})

	t.Run("sets the internal flag", func(t *testing.T) {
		s := store.NewWorkspaceMemoryStore()

		require.NoError(t, s.Create(context.Background(), newWorkspace("ws1")))
		require.NoError(t, s.SetInternal(context.Background(), "ws1", true))

		ws, err := s.Get(context.Background(), "ws1")
		require.NoError(t, err)
		assert.True(t, ws.Internal)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		s := store.NewWorkspaceMemoryStore()

		require.NoError(t, s.Create(context.Background(), newWorkspace("ws1")))

		ws, _ := s.Get(context.Background(), "ws1")
		ws.Name = "mutated"

		fresh, err := s.Get(context.Background(), "ws1")
		require.NoError(t, err)
		assert.Equal(t, "Acme", fresh.Name, "callers must not mutate stored state")
	})
}

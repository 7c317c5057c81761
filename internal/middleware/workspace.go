package middleware

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/workhive/workhive-api/internal/workspace"
	"go.uber.org/zap"
)

// workspaceHeader is set by the authentication layer in front of this
// service once the caller's token has been verified.
const workspaceHeader = "X-Workspace-ID"

// WorkspaceResolver returns a Huma middleware that resolves the caller's
// workspace and places it in the request context for downstream middleware
// and handlers. The internal flag comes from a repository lookup; if that
// lookup fails the id is still placed in context with the flag unset, so
// rate limiting stays enforced while the check degrades.
func WorkspaceResolver(repo workspace.Repository, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(workspaceHeader)
		if id == "" {
			next(ctx)

			return
		}

		wsCtx := workspace.Context{ID: id}

		ws, err := repo.Get(ctx.Context(), id)
		switch {
		case err == nil:
			wsCtx.Internal = ws.Internal
		case !errors.Is(err, workspace.ErrNotFound):
			logger.Warn("workspace lookup failed",
				zap.String("workspace_id", id),
				zap.Error(err),
			)
		}

		newCtx := workspace.NewContext(ctx.Context(), wsCtx)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/workhive/workhive-api/internal/ratelimit"
)

// RegisterRoutes registers the API surface. Each operation selects its rate
// limit policy by name via operation metadata; the rate limit middleware
// resolves the name against the policy registry.
func RegisterRoutes(api huma.API, ws *WorkspaceHandler, docs *DocumentHandler, auth *AuthHandler) {
	// Workspace CRUD runs under the general per-workspace API limit.
	huma.Register(api, huma.Operation{
		Method:   http.MethodPost,
		Path:     "/workspaces",
		Summary:  "Create workspace",
		Tags:     []string{"Workspaces"},
		Metadata: policyMeta(ratelimit.PolicyAPI),
	}, ws.Create)

	huma.Register(api, huma.Operation{
		Method:   http.MethodGet,
		Path:     "/workspaces/{id}",
		Summary:  "Get workspace",
		Tags:     []string{"Workspaces"},
		Metadata: policyMeta(ratelimit.PolicyAPI),
	}, ws.Get)

	huma.Register(api, huma.Operation{
		Method:   http.MethodPatch,
		Path:     "/workspaces/{id}",
		Summary:  "Update workspace",
		Tags:     []string{"Workspaces"},
		Metadata: policyMeta(ratelimit.PolicyAPI),
	}, ws.Update)

	huma.Register(api, huma.Operation{
		Method:        http.MethodDelete,
		Path:          "/workspaces/{id}",
		Summary:       "Delete workspace",
		Tags:          []string{"Workspaces"},
		DefaultStatus: http.StatusNoContent,
		Metadata:      policyMeta(ratelimit.PolicyAPI),
	}, ws.Delete)

	// Document sync is the most expensive call in the product; it gets its
	// own, tighter per-workspace policy.
	huma.Register(api, huma.Operation{
		Method:   http.MethodPost,
		Path:     "/workspaces/{id}/documents/sync",
		Summary:  "Sync workspace documents",
		Tags:     []string{"Documents"},
		Metadata: policyMeta(ratelimit.PolicyDocumentSync),
	}, docs.Sync)

	// Unauthenticated endpoints are limited per client IP.
	huma.Register(api, huma.Operation{
		Method:   http.MethodPost,
		Path:     "/auth/login",
		Summary:  "Log in",
		Tags:     []string{"Auth"},
		Metadata: policyMeta(ratelimit.PolicyLogin),
	}, auth.Login)

	huma.Register(api, huma.Operation{
		Method:   http.MethodPost,
		Path:     "/auth/signup",
		Summary:  "Sign up",
		Tags:     []string{"Auth"},
		Metadata: policyMeta(ratelimit.PolicySignup),
	}, auth.Signup)

	huma.Register(api, huma.Operation{
		Method:   http.MethodPost,
		Path:     "/auth/password-reset",
		Summary:  "Request password reset",
		Tags:     []string{"Auth"},
		Metadata: policyMeta(ratelimit.PolicyPasswordReset),
	}, auth.PasswordReset)

	huma.Register(api, huma.Operation{
		Method:   http.MethodPost,
		Path:     "/auth/token/refresh",
		Summary:  "Refresh session token",
		Tags:     []string{"Auth"},
		Metadata: policyMeta(ratelimit.PolicyTokenRefresh),
	}, auth.RefreshToken)

	huma.Register(api, huma.Operation{
		Method:   http.MethodPost,
		Path:     "/invites/{token}/accept",
		Summary:  "Accept team invite",
		Tags:     []string{"Team"},
		Metadata: policyMeta(ratelimit.PolicyInviteAccept),
	}, auth.AcceptInvite)
}

func policyMeta(policy ratelimit.Policy) map[string]any {
	return map[string]any{ratelimit.MetadataKey: policy.Name}
}

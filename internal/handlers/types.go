package handlers

import "time"

// CreateWorkspaceRequest is the request body for creating a workspace.
type CreateWorkspaceRequest struct {
	Body struct {
		Name string `doc:"Workspace display name" example:"Acme Inc"  json:"name" minLength:"1"`
		Plan string `doc:"Billing plan"           example:"starter"   json:"plan,omitempty"`
	}
}

// WorkspaceResponse is the representation of a workspace.
type WorkspaceResponse struct {
	Body struct {
		ID        string    `doc:"Workspace id"        example:"ws_x8Kq2mP1" json:"id"`
		Name      string    `doc:"Display name"        example:"Acme Inc"    json:"name"`
		Plan      string    `doc:"Billing plan"        example:"starter"     json:"plan,omitempty"`
		Internal  bool      `doc:"Internal workspace"  json:"internal"`
		CreatedAt time.Time `doc:"Creation time"       json:"createdAt"`
	}
}

// GetWorkspaceRequest identifies a workspace by id.
type GetWorkspaceRequest struct {
	ID string `doc:"Workspace id" example:"ws_x8Kq2mP1" path:"id"`
}

// UpdateWorkspaceRequest updates a workspace's mutable fields.
type UpdateWorkspaceRequest struct {
	ID   string `doc:"Workspace id" path:"id"`
	Body struct {
		Name string `doc:"Workspace display name" json:"name,omitempty"`
		Plan string `doc:"Billing plan"           json:"plan,omitempty"`
	}
}

// DeleteWorkspaceRequest identifies a workspace to delete.
type DeleteWorkspaceRequest struct {
	ID string `doc:"Workspace id" path:"id"`
}

// SyncDocumentsRequest triggers a document sync for a workspace.
type SyncDocumentsRequest struct {
	ID   string `doc:"Workspace id" path:"id"`
	Body struct {
		Source      string   `doc:"Document source"         example:"google-drive" json:"source"`
		DocumentIDs []string `doc:"Documents to sync"       json:"documentIds,omitempty"`
	}
}

// SyncDocumentsResponse reports an accepted sync run.
type SyncDocumentsResponse struct {
	Body struct {
		SyncID   string `doc:"Sync run id"               json:"syncId"`
		Accepted int    `doc:"Documents queued for sync" json:"accepted"`
	}
}

// LoginRequest is the request body for password login.
type LoginRequest struct {
	Body struct {
		Email    string `doc:"Account email" format:"email" json:"email"`
		Password string `doc:"Password"      json:"password" minLength:"8"`
	}
}

// TokenResponse carries the issued session token.
type TokenResponse struct {
	Body struct {
		Token     string    `doc:"Session token" json:"token"`
		ExpiresAt time.Time `doc:"Token expiry"  json:"expiresAt"`
	}
}

// SignupRequest is the request body for creating an account.
type SignupRequest struct {
	Body struct {
		Email         string `doc:"Account email"  format:"email" json:"email"`
		Password      string `doc:"Password"       json:"password" minLength:"8"`
		WorkspaceName string `doc:"Workspace name" json:"workspaceName" minLength:"1"`
	}
}

// PasswordResetRequest starts a password reset flow.
type PasswordResetRequest struct {
	Body struct {
		Email string `doc:"Account email" format:"email" json:"email"`
	}
}

// AcceptedResponse acknowledges a request that is processed asynchronously.
type AcceptedResponse struct {
	Body struct {
		Status string `doc:"Processing status" example:"accepted" json:"status"`
	}
}

// TokenRefreshRequest exchanges a refresh token for a new session token.
type TokenRefreshRequest struct {
	Body struct {
		RefreshToken string `doc:"Refresh token" json:"refreshToken"`
	}
}

// AcceptInviteRequest accepts a team invite by token.
type AcceptInviteRequest struct {
	Token string `doc:"Invite token" path:"token"`
}

// AcceptInviteResponse reports which workspace the invite joined.
type AcceptInviteResponse struct {
	Body struct {
		WorkspaceID string `doc:"Workspace joined" json:"workspaceId"`
	}
}

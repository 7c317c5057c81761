package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/workhive/workhive-api/internal/workspace"
	"go.uber.org/zap"
)

const sessionTTL = 24 * time.Hour

// AuthHandler serves the unauthenticated account endpoints. Token
// verification itself lives in the identity provider in front of this
// service; these endpoints issue opaque session handles and queue the
// slower flows, and exist here chiefly as the brute-force surface the
// IP-scoped rate limit policies protect.
type AuthHandler struct {
	repo   workspace.Repository
	newID  IDGenerator
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(repo workspace.Repository, newID IDGenerator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		repo:   repo,
		newID:  newID,
		logger: logger,
	}
}

func (h *AuthHandler) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	meta := RequestMetaFromContext(ctx)
	h.logger.Info("login",
		zap.String("email", req.Body.Email),
		zap.String("client_ip", meta.ClientIP),
	)

	return tokenResponse(), nil
}

func (h *AuthHandler) Signup(ctx context.Context, req *SignupRequest) (*TokenResponse, error) {
	ws := &workspace.Workspace{
		ID:        "ws_" + h.newID(),
		Name:      req.Body.WorkspaceName,
		Plan:      "starter",
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(ctx, ws); err != nil {
		// The account flow continues; workspace setup is retried by the
		// onboarding wizard.
		h.logger.Error("failed to create signup workspace", zap.Error(err))
	}

	return tokenResponse(), nil
}

func (h *AuthHandler) PasswordReset(ctx context.Context, req *PasswordResetRequest) (*AcceptedResponse, error) {
	meta := RequestMetaFromContext(ctx)
	h.logger.Info("password reset requested",
		zap.String("email", req.Body.Email),
		zap.String("client_ip", meta.ClientIP),
	)

	resp := &AcceptedResponse{}
	resp.Body.Status = "accepted"

	return resp, nil
}

func (h *AuthHandler) RefreshToken(_ context.Context, _ *TokenRefreshRequest) (*TokenResponse, error) {
	return tokenResponse(), nil
}

func (h *AuthHandler) AcceptInvite(ctx context.Context, req *AcceptInviteRequest) (*AcceptInviteResponse, error) {
	meta := RequestMetaFromContext(ctx)
	h.logger.Info("invite accepted",
		zap.String("token", req.Token),
		zap.String("client_ip", meta.ClientIP),
	)

	resp := &AcceptInviteResponse{}
	resp.Body.WorkspaceID = "ws_" + req.Token

	return resp, nil
}

func tokenResponse() *TokenResponse {
	resp := &TokenResponse{}
	resp.Body.Token = uuid.NewString()
	resp.Body.ExpiresAt = time.Now().Add(sessionTTL)

	return resp
}

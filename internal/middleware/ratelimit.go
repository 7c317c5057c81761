package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/workhive/workhive-api/internal/audit"
	"github.com/workhive/workhive-api/internal/messaging"
	"github.com/workhive/workhive-api/internal/ratelimit"
	"github.com/workhive/workhive-api/internal/workspace"
	"go.uber.org/zap"
)

const (
	codeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	codeNoWorkspaceContext = "NO_WORKSPACE_CONTEXT"
)

// rateLimitError is the 429 response body for workspace-scoped policies.
type rateLimitError struct {
	Error      string    `json:"error"`
	Code       string    `json:"code"`
	Limit      int64     `json:"limit"`
	Current    int64     `json:"current"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"resetAt"`
	RetryAfter int64     `json:"retryAfter"`
}

// ipRateLimitError is the shorter 429 body used by IP-scoped policies.
type ipRateLimitError struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	RetryAfter int64  `json:"retryAfter"`
}

// noWorkspaceError is the 401 body when a workspace-scoped policy runs
// without a resolved workspace.
type noWorkspaceError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RateLimiter returns a Huma middleware enforcing the rate limit policy a
// route selects via operation metadata (ratelimit.MetadataKey, the policy
// name). Routes without a policy pass through untouched.
//
// Every internal failure resolves to allow: a check that cannot be performed
// must not take the protected endpoint down with it. The only responses this
// middleware produces itself are the 429 rejection and the 401 for a
// workspace-scoped policy with no workspace context; no code path yields
// a 5xx.
func RateLimiter(
	limiter *ratelimit.Limiter,
	policies ratelimit.Registry,
	publishExceeded messaging.Publish[audit.LimitExceededEvent],
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		policy, ok := policyFor(ctx, policies)
		if !ok {
			next(ctx)

			return
		}

		subject, proceed := resolveSubject(ctx, policy)
		if !proceed {
			return
		}

		if subject == "" {
			// Internal workspace: enforcement skipped.
			next(ctx)

			return
		}

		decision, err := limiter.Check(ctx.Context(), policy, subject)
		if err != nil {
			// Fail open: availability of the endpoint wins over strict
			// enforcement.
			logger.Error("rate limit check failed, allowing request",
				zap.String("policy", policy.Name),
				zap.String("subject", subject),
				zap.Error(err),
			)
			next(ctx)

			return
		}

		setRateLimitHeaders(ctx, decision)

		if !decision.Allowed {
			rejectRateLimited(ctx, policy, subject, decision, publishExceeded, logger)

			return
		}

		next(ctx)
	}
}

// policyFor reads the policy name from the operation metadata and resolves
// it against the registry.
func policyFor(ctx huma.Context, policies ratelimit.Registry) (ratelimit.Policy, bool) {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return ratelimit.Policy{}, false
	}

	name, ok := op.Metadata[ratelimit.MetadataKey].(string)
	if !ok {
		return ratelimit.Policy{}, false
	}

	return policies.Lookup(name)
}

// resolveSubject returns the scoping subject for the request. The second
// return value is false when a response has already been written. An empty
// subject with proceed=true means enforcement is skipped for this request.
func resolveSubject(ctx huma.Context, policy ratelimit.Policy) (string, bool) {
	if policy.Subject == ratelimit.SubjectWorkspace {
		ws, ok := workspace.FromContext(ctx.Context())
		if !ok || ws.ID == "" {
			writeJSON(ctx, http.StatusUnauthorized, noWorkspaceError{
				Error: "workspace context required",
				Code:  codeNoWorkspaceContext,
			})

			return "", false
		}

		if policy.SkipInternal && ws.Internal {
			return "", true
		}

		return ws.ID, true
	}

	return clientIP(ctx), true
}

func setRateLimitHeaders(ctx huma.Context, decision ratelimit.Decision) {
	remaining := decision.Remaining
	if remaining < 0 {
		remaining = 0
	}

	ctx.SetHeader("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
	ctx.SetHeader("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
	ctx.SetHeader("X-RateLimit-Reset", decision.ResetAt.UTC().Format(time.RFC3339))
}

func rejectRateLimited(
	ctx huma.Context,
	policy ratelimit.Policy,
	subject string,
	decision ratelimit.Decision,
	publishExceeded messaging.Publish[audit.LimitExceededEvent],
	logger *zap.Logger,
) {
	logger.Warn("rate limit exceeded",
		zap.String("policy", policy.Name),
		zap.String("subject", subject),
		zap.Int64("count", decision.Count),
		zap.Int64("limit", decision.Limit),
	)

	if publishExceeded != nil {
		event := &audit.LimitExceededEvent{
			Policy:     policy.Name,
			Subject:    subject,
			Key:        policy.KeyPrefix + ":" + subject,
			Limit:      decision.Limit,
			Count:      decision.Count,
			ResetAt:    decision.ResetAt,
			Path:       getOperationPath(ctx),
			Method:     ctx.Method(),
			ClientIP:   clientIP(ctx),
			OccurredAt: time.Now(),
		}
		if err := publishExceeded(event); err != nil {
			logger.Error("failed to publish limit exceeded event",
				zap.String("policy", policy.Name),
				zap.Error(err),
			)
		}
	}

	retryAfter := int64(decision.RetryAfter.Seconds())

	if policy.Subject == ratelimit.SubjectIP {
		writeJSON(ctx, http.StatusTooManyRequests, ipRateLimitError{
			Error:      "rate limit exceeded",
			Code:       codeRateLimitExceeded,
			RetryAfter: retryAfter,
		})

		return
	}

	writeJSON(ctx, http.StatusTooManyRequests, rateLimitError{
		Error:      "rate limit exceeded",
		Code:       codeRateLimitExceeded,
		Limit:      decision.Limit,
		Current:    decision.Count,
		Remaining:  0,
		ResetAt:    decision.ResetAt.UTC(),
		RetryAfter: retryAfter,
	})
}

func writeJSON(ctx huma.Context, status int, body any) {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(status)
	_ = json.NewEncoder(ctx.BodyWriter()).Encode(body)
}

// getOperationPath extracts the path from the operation, if available.
func getOperationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}

// clientIP extracts the client IP from the request, considering proxies.
func clientIP(ctx huma.Context) string {
	// Check X-Forwarded-For header (may contain multiple IPs)
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		// Take the first IP (original client)
		if idx := strings.Index(xff, ","); idx != -1 {
			xff = xff[:idx]
		}

		if ip := strings.TrimSpace(xff); ip != "" {
			return ip
		}
	}

	// Check X-Real-IP header
	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to the raw connection address
	addr := ctx.RemoteAddr()

	if ip, _, err := net.SplitHostPort(addr); err == nil && ip != "" {
		return ip
	}

	if addr != "" {
		return addr
	}

	return "unknown"
}

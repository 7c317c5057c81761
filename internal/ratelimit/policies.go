package ratelimit

import "time"

// Built-in policies. Workspace-scoped policies protect authenticated API
// traffic; IP-scoped policies protect unauthenticated endpoints from brute
// force and abuse, so no internal-workspace skip applies to them.
var (
	// PolicyDocumentSync limits document sync per workspace.
	PolicyDocumentSync = Policy{
		Name:         "doc-sync",
		Window:       time.Minute,
		Max:          10,
		KeyPrefix:    "rl:doc-sync",
		Subject:      SubjectWorkspace,
		SkipInternal: true,
	}

	// PolicyAPI is the general per-workspace API limit.
	PolicyAPI = Policy{
		Name:         "api",
		Window:       time.Minute,
		Max:          100,
		KeyPrefix:    "rl:api",
		Subject:      SubjectWorkspace,
		SkipInternal: true,
	}

	// PolicyLogin limits login attempts per client IP.
	PolicyLogin = Policy{
		Name:      "login",
		Window:    time.Minute,
		Max:       5,
		KeyPrefix: "rl:login",
		Subject:   SubjectIP,
	}

	// PolicySignup limits account creation per client IP.
	PolicySignup = Policy{
		Name:      "signup",
		Window:    time.Minute,
		Max:       3,
		KeyPrefix: "rl:signup",
		Subject:   SubjectIP,
	}

	// PolicyPasswordReset limits password reset requests per client IP.
	PolicyPasswordReset = Policy{
		Name:      "password-reset",
		Window:    time.Minute,
		Max:       3,
		KeyPrefix: "rl:pwreset",
		Subject:   SubjectIP,
	}

	// PolicyTokenRefresh limits token refreshes per client IP.
	PolicyTokenRefresh = Policy{
		Name:      "token-refresh",
		Window:    time.Minute,
		Max:       20,
		KeyPrefix: "rl:refresh",
		Subject:   SubjectIP,
	}

	// PolicyInviteAccept limits invite acceptance per client IP.
	PolicyInviteAccept = Policy{
		Name:      "invite-accept",
		Window:    time.Minute,
		Max:       10,
		KeyPrefix: "rl:invite",
		Subject:   SubjectIP,
	}
)

// Registry is a read-only table of named policies.
type Registry map[string]Policy

// DefaultRegistry returns the process-wide policy table.
func DefaultRegistry() Registry {
	policies := []Policy{
		PolicyDocumentSync,
		PolicyAPI,
		PolicyLogin,
		PolicySignup,
		PolicyPasswordReset,
		PolicyTokenRefresh,
		PolicyInviteAccept,
	}

	reg := make(Registry, len(policies))
	for _, p := range policies {
		reg[p.Name] = p
	}

	return reg
}

// Lookup returns the policy registered under name.
func (r Registry) Lookup(name string) (Policy, bool) {
	p, ok := r[name]

	return p, ok
}

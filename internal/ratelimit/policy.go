package ratelimit

import "time"

// Subject identifies what a policy scopes its counters by.
type Subject string

const (
	// SubjectWorkspace scopes counters by the caller's workspace id.
	SubjectWorkspace Subject = "workspace"
	// SubjectIP scopes counters by the client IP address.
	SubjectIP Subject = "ip"
)

// Policy is an immutable rate limit configuration. Policies are defined at
// process start and never mutated at runtime.
type Policy struct {
	// Name identifies the policy in logs and route metadata.
	Name string
	// Window is the fixed window duration.
	Window time.Duration
	// Max is the number of requests allowed per window.
	Max int64
	// KeyPrefix namespaces this policy's counters. Distinct prefixes keep
	// policies from colliding on the same subject.
	KeyPrefix string
	// Subject selects the scoping scheme (workspace id or client IP).
	Subject Subject
	// SkipInternal bypasses enforcement for workspaces flagged internal.
	// Only meaningful for workspace-scoped policies.
	SkipInternal bool
}

// MetadataKey is the operation metadata key routes use to select a policy.
const MetadataKey = "rateLimitPolicy"

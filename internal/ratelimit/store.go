package ratelimit

import (
	"context"
	"time"
)

// Counter is the state of one rate limit bucket within its current window.
type Counter struct {
	// Count is the number of requests observed in the current window.
	Count int64
	// ResetAt is when the current window ends and the count starts over.
	ResetAt time.Time
}

// CounterStore defines the interface for rate limit counter storage.
type CounterStore interface {
	// Increment atomically creates-or-increments the counter for key.
	// If no live entry exists (none, or the previous window has passed),
	// a new window starts with count=1 and resetAt=now+window. Otherwise
	// the count is incremented in place and the existing resetAt is
	// returned unchanged. Increment never fails for unknown keys.
	Increment(ctx context.Context, key string, window time.Duration) (Counter, error)

	// Reset zeroes the count for key if present, preserving its resetAt.
	Reset(ctx context.Context, key string) error

	// Clear drops all counters. Intended for tests and administrative use.
	Clear(ctx context.Context) error
}

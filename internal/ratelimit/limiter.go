package ratelimit

import (
	"context"
	"math"
	"time"
)

// Decision is the outcome of a rate limit check.
type Decision struct {
	Allowed bool
	// Limit is the policy maximum for the window.
	Limit int64
	// Count is the number of requests observed including this one.
	Count int64
	// Remaining is Limit minus Count; it may go negative once over limit.
	Remaining int64
	// ResetAt is when the current window ends.
	ResetAt time.Time
	// RetryAfter is the whole seconds until ResetAt, rounded up.
	RetryAfter time.Duration
}

// Limiter performs fixed-window rate limit checks against a counter store.
type Limiter struct {
	store CounterStore
}

// NewLimiter creates a limiter backed by the given counter store.
func NewLimiter(store CounterStore) *Limiter {
	return &Limiter{store: store}
}

// Check increments the counter for the policy/subject pair and compares the
// result against the policy limit. An error means the check could not be
// performed at all; callers decide what that means (the HTTP middleware
// fails open).
func (l *Limiter) Check(ctx context.Context, policy Policy, subject string) (Decision, error) {
	key := policy.KeyPrefix + ":" + subject

	counter, err := l.store.Increment(ctx, key, policy.Window)
	if err != nil {
		return Decision{}, err
	}

	retryAfter := time.Duration(math.Ceil(time.Until(counter.ResetAt).Seconds())) * time.Second
	if retryAfter < 0 {
		retryAfter = 0
	}

	return Decision{
		Allowed:    counter.Count <= policy.Max,
		Limit:      policy.Max,
		Count:      counter.Count,
		Remaining:  policy.Max - counter.Count,
		ResetAt:    counter.ResetAt,
		RetryAfter: retryAfter,
	}, nil
}

// Store returns the underlying counter store.
func (l *Limiter) Store() CounterStore {
	return l.store
}

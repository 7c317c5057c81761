package store

import (
	"context"
	"time"

	"github.com/workhive/workhive-api/internal/ratelimit"
	"go.uber.org/zap"
)

// ReadyCounterStore is a counter store that can report whether it is
// currently usable.
type ReadyCounterStore interface {
	ratelimit.CounterStore
	Ready() bool
}

// FallbackCounterStore routes increments to a distributed primary when it is
// ready and falls back to a local store otherwise. A single failed call
// falls back for that call only; readiness is tracked by the primary's own
// connection probes. With a nil primary the store behaves exactly like the
// local one, which is the intended mode when no backend is configured.
type FallbackCounterStore struct {
	primary ReadyCounterStore
	local   ratelimit.CounterStore
	logger  *zap.Logger
}

// NewFallbackCounterStore composes an optional primary with an always
// available local store.
func NewFallbackCounterStore(primary ReadyCounterStore, local ratelimit.CounterStore, logger *zap.Logger) *FallbackCounterStore {
	return &FallbackCounterStore{
		primary: primary,
		local:   local,
		logger:  logger,
	}
}

func (s *FallbackCounterStore) Increment(ctx context.Context, key string, window time.Duration) (ratelimit.Counter, error) {
	if s.primary == nil || !s.primary.Ready() {
		return s.local.Increment(ctx, key, window)
	}

	counter, err := s.primary.Increment(ctx, key, window)
	if err != nil {
		s.logger.Warn("distributed counter increment failed, using local store",
			zap.String("key", key),
			zap.Error(err),
		)

		return s.local.Increment(ctx, key, window)
	}

	return counter, nil
}

// Reset clears the count in both stores so an administrative reset takes
// effect regardless of which store served recent increments.
func (s *FallbackCounterStore) Reset(ctx context.Context, key string) error {
	if err := s.local.Reset(ctx, key); err != nil {
		return err
	}

	if s.primary != nil && s.primary.Ready() {
		if err := s.primary.Reset(ctx, key); err != nil {
			s.logger.Warn("distributed counter reset failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	return nil
}

func (s *FallbackCounterStore) Clear(ctx context.Context) error {
	if err := s.local.Clear(ctx); err != nil {
		return err
	}

	if s.primary != nil && s.primary.Ready() {
		if err := s.primary.Clear(ctx); err != nil {
			s.logger.Warn("distributed counter clear failed", zap.Error(err))
		}
	}

	return nil
}

// Compile-time check.
var _ ratelimit.CounterStore = (*FallbackCounterStore)(nil)

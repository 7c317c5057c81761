package store

import (
	"context"

	"github.com/workhive/workhive-api/internal/audit"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of audit.Store that logs events.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op audit store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLimitExceeded(_ context.Context, event *audit.LimitExceededEvent) error {
	n.logger.Info("limit exceeded event received",
		zap.String("policy", event.Policy),
		zap.String("subject", event.Subject),
		zap.Int64("count", event.Count),
		zap.Int64("limit", event.Limit),
		zap.String("path", event.Path),
	)

	return nil
}

// Compile-time check.
var _ audit.Store = (*Noop)(nil)

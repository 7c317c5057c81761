package audit

import (
	"context"

	"github.com/workhive/workhive-api/internal/messaging"
)

// NewLimitExceededHandler returns a messaging handler that persists limit
// exceeded events to the store.
func NewLimitExceededHandler(store Store) messaging.Handler[LimitExceededEvent] {
	return func(ctx context.Context, event *LimitExceededEvent) error {
		return store.SaveLimitExceeded(ctx, event)
	}
}

package ports

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// StatusChangedEvent is emitted once for every successful status transition,
// single or bulk. Delivery and retry are the consumer's responsibility.
type StatusChangedEvent struct {
	OrderID     kernel.UUID
	OrderNumber string
	OldStatus   order.Status
	NewStatus   order.Status
	OccurredAt  time.Time
}

// StatusChangePublisher delivers status-change notifications to external
// consumers. Publishing is fire-and-forget from the core's point of view:
// callers log a returned error and continue, they never fail the mutation
// that produced the event.
type StatusChangePublisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
}

// ActivityLog exposes the recent mutation history recorded by the engine.
// Implementations keep a bounded window; older events are discarded.
type ActivityLog interface {
	// Recent returns up to limit events, most recent first.
	Recent(ctx context.Context, limit int) ([]StatusChangedEvent, error)
}

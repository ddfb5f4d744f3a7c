// Package commands contains business operations that modify order state.
// Implements the Command pattern for write operations in the CQRS split.
// All commands follow a consistent shape: a constructor-validated command
// struct, and a handler that consults the transition policy before writing
// to the order store and emitting a status-change event.
package commands

import (
	"context"
	"log/slog"

	"orderdesk/internal/core/ports"
)

// publishStatusChanged emits a fire-and-forget notification for a committed
// transition. Publish failures are logged and swallowed: notification
// delivery is the consumer's concern and must never fail the mutation.
func publishStatusChanged(
	ctx context.Context,
	publisher ports.StatusChangePublisher,
	logger *slog.Logger,
	event ports.StatusChangedEvent,
) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishStatusChanged(ctx, event); err != nil {
		logger.WarnContext(ctx, "status change notification failed",
			"order_id", event.OrderID.String(),
			"new_status", event.NewStatus.String(),
			"error", err,
		)
	}
}

package queries

import (
	"context"
	"fmt"

	"orderdesk/internal/core/ports"
)

// ActivityFeedQueryHandler formats the recent mutation history into feed
// entries. The feed is a derived view: it maintains no state of its own and
// reads the bounded event log the engine appends to on every successful
// transition.
type ActivityFeedQueryHandler struct {
	log ports.ActivityLog
}

// NewActivityFeedQueryHandler creates a handler bound to an activity log.
func NewActivityFeedQueryHandler(log ports.ActivityLog) ActivityFeedQueryHandler {
	return ActivityFeedQueryHandler{log: log}
}

// Handle returns up to Limit entries, most recent first.
func (h ActivityFeedQueryHandler) Handle(
	ctx context.Context,
	query ActivityFeedQuery,
) ([]ActivityEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events, err := h.log.Recent(ctx, query.Limit())
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, len(events))
	for i, event := range events {
		entries[i] = ActivityEntry{
			Title: fmt.Sprintf("Order %s", event.NewStatus),
			Description: fmt.Sprintf("Order %s moved from %s to %s",
				event.OrderNumber, event.OldStatus, event.NewStatus),
			OrderNumber: event.OrderNumber,
			Status:      event.NewStatus,
			Timestamp:   event.OccurredAt,
		}
	}
	return entries, nil
}

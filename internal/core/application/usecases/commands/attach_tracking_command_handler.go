package commands

import (
	"context"

	"orderdesk/internal/core/ports"
)

// AttachTrackingCommandHandler records a tracking number on an existing
// order. No notification is emitted: tracking attachment is not a status
// transition.
type AttachTrackingCommandHandler struct {
	store ports.OrderStore
}

// NewAttachTrackingCommandHandler creates a handler for tracking attachment.
func NewAttachTrackingCommandHandler(store ports.OrderStore) AttachTrackingCommandHandler {
	return AttachTrackingCommandHandler{store: store}
}

// Handle loads the order, attaches the tracking number, and commits the write.
func (h AttachTrackingCommandHandler) Handle(ctx context.Context, command AttachTrackingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := h.store.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AttachTracking(command.TrackingNumber()); err != nil {
		return err
	}

	return h.store.Update(ctx, aggregate)
}

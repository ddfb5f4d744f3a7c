package commands

import (
	"errors"
	"strings"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrAttachTrackingCommandIsNotConstructed = errors.New(
	"AttachTrackingCommand must be created via NewAttachTrackingCommand constructor",
)

// AttachTrackingCommand records a carrier tracking number on an order.
// Tracking attachment is the only mutation besides status transitions that
// the vendor may issue.
type AttachTrackingCommand struct {
	orderID        kernel.UUID
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewAttachTrackingCommand creates a validated tracking attachment command.
func NewAttachTrackingCommand(orderID kernel.UUID, trackingNumber string) (AttachTrackingCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AttachTrackingCommand{}, err
	}
	if strings.TrimSpace(trackingNumber) == "" {
		return AttachTrackingCommand{}, errs.NewValueIsRequiredError("tracking number")
	}

	return AttachTrackingCommand{
		orderID:        orderID,
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the id of the order to attach tracking to.
func (c AttachTrackingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TrackingNumber returns the carrier tracking number.
func (c AttachTrackingCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Validate ensures the command was created through the constructor.
func (c AttachTrackingCommand) Validate() error {
	return c.guard.Validate(ErrAttachTrackingCommandIsNotConstructed)
}

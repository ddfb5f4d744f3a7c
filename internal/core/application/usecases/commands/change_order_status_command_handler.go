package commands

import (
	"context"
	"log/slog"
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies a single status transition.
// It consults the transition policy before writing to the order store and
// emits one StatusChangedEvent per committed transition.
//
// The write path is serialized per order id by the store, so a concurrent
// single edit and bulk edit on the same order cannot race into a lost
// update; a detected conflict surfaces as errs.ErrConcurrencyConflict.
type ChangeOrderStatusCommandHandler struct {
	store     ports.OrderStore
	policy    order.TransitionPolicy
	publisher ports.StatusChangePublisher
	logger    *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for single-order
// status transitions. The publisher may be nil when notifications are not
// wired (tests, offline tooling).
func NewChangeOrderStatusCommandHandler(
	store ports.OrderStore,
	policy order.TransitionPolicy,
	publisher ports.StatusChangePublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		store:     store,
		policy:    policy,
		publisher: publisher,
		logger:    logger.With("component", "change_order_status"),
	}
}

// Handle loads the order, validates the requested edge, commits the write,
// and emits the notification. The order is left unchanged on any failure.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := h.store.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	oldStatus := aggregate.Status()
	if err = aggregate.ChangeStatus(h.policy, command.Target()); err != nil {
		return err
	}

	if err = h.store.Update(ctx, aggregate); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, ports.StatusChangedEvent{
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.OrderNumber(),
		OldStatus:   oldStatus,
		NewStatus:   aggregate.Status(),
		OccurredAt:  time.Now(),
	})

	return nil
}

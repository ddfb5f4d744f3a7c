package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrBulkChangeStatusCommandIsNotConstructed = errors.New(
	"BulkChangeStatusCommand must be created via NewBulkChangeStatusCommand constructor",
)

// FailureReason classifies why a single item of a bulk operation failed.
// Reasons are stable wire-level codes, not display strings.
type FailureReason string

const (
	// ReasonNotFound: the order id is unknown to the store.
	ReasonNotFound FailureReason = "not_found"
	// ReasonInvalidTransition: the requested edge is not permitted by the policy.
	ReasonInvalidTransition FailureReason = "invalid_transition"
	// ReasonTimeout: the item's apply exceeded its deadline.
	ReasonTimeout FailureReason = "timeout"
	// ReasonConcurrencyConflict: a lost update was detected on the serialized write.
	ReasonConcurrencyConflict FailureReason = "concurrency_conflict"
	// ReasonCancelled: the bulk operation was cancelled before this item started.
	ReasonCancelled FailureReason = "cancelled"
	// ReasonInternal: an unclassified backend failure. The underlying error
	// is preserved on the ItemFailure.
	ReasonInternal FailureReason = "internal"
)

// ItemFailure records one failed item of a bulk operation.
type ItemFailure struct {
	OrderID kernel.UUID
	Reason  FailureReason
	// Err is the underlying classified error, nil for cancelled items.
	Err error
}

// Manifest is the structured result of a bulk status change. It partitions
// the requested ids into succeeded and failed: every requested id appears
// exactly once, so len(Succeeded) + len(Failed) always equals the number of
// requested ids. A manifest with failures is a result, not an error: the
// bulk call itself always returns a complete manifest.
type Manifest struct {
	Succeeded []kernel.UUID
	Failed    []ItemFailure
}

// HasFailures reports whether at least one item failed.
func (m Manifest) HasFailures() bool {
	return len(m.Failed) > 0
}

// Total returns the number of accounted items.
func (m Manifest) Total() int {
	return len(m.Succeeded) + len(m.Failed)
}

// BulkChangeStatusCommand requests one status change across many orders with
// isolated per-item outcomes.
//
// Example:
//
//	cmd, err := NewBulkChangeStatusCommand(ids, order.Processing)
//	if err != nil {
//	    return err
//	}
//	manifest, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // malformed command only
//	}
//	if manifest.HasFailures() {
//	    // inspect manifest.Failed; succeeded items are already committed
//	}
type BulkChangeStatusCommand struct {
	orderIDs []kernel.UUID
	target   order.Status

	guard guard.ConstructorGuard
}

// NewBulkChangeStatusCommand creates a validated bulk status change command.
// The id list must be non-empty and every id well formed; duplicates are
// permitted and each occurrence is accounted separately in the manifest.
func NewBulkChangeStatusCommand(orderIDs []kernel.UUID, target order.Status) (BulkChangeStatusCommand, error) {
	if len(orderIDs) == 0 {
		return BulkChangeStatusCommand{}, errs.NewValueIsRequiredError("order ids")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return BulkChangeStatusCommand{}, err
		}
	}
	if err := target.Validate(); err != nil {
		return BulkChangeStatusCommand{}, err
	}

	ids := make([]kernel.UUID, len(orderIDs))
	copy(ids, orderIDs)

	return BulkChangeStatusCommand{
		orderIDs: ids,
		target:   target,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// OrderIDs returns a copy of the requested order ids, in request order.
func (c BulkChangeStatusCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// Target returns the requested target status.
func (c BulkChangeStatusCommand) Target() order.Status {
	return c.target
}

// Validate ensures the command was created through the constructor.
func (c BulkChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkChangeStatusCommandIsNotConstructed)
}

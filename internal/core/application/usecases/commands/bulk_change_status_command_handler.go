package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

const (
	// DefaultBulkConcurrency bounds simultaneous in-flight item applies so a
	// large batch cannot overwhelm the backing store.
	DefaultBulkConcurrency = 4

	// DefaultBulkItemTimeout is the per-item deadline. A timed-out item is
	// recorded as failed without blocking the rest of the batch.
	DefaultBulkItemTimeout = 5 * time.Second
)

// BulkConfig tunes the bulk coordinator. Zero values fall back to defaults.
type BulkConfig struct {
	Concurrency int
	ItemTimeout time.Duration
}

func (c BulkConfig) withDefaults() BulkConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultBulkConcurrency
	}
	if c.ItemTimeout <= 0 {
		c.ItemTimeout = DefaultBulkItemTimeout
	}
	return c
}

// BulkChangeStatusCommandHandler is the bulk operation coordinator: it
// applies one status change across many orders with a bounded worker pool,
// isolating every item's outcome.
//
// Guarantees:
//   - no item's failure aborts or rolls back any other item
//   - every requested id is accounted exactly once in the returned Manifest
//   - cancellation is cooperative: once observed, no new items start, items
//     already in flight finish and are recorded, unstarted items are recorded
//     failed with reason "cancelled"
type BulkChangeStatusCommandHandler struct {
	store     ports.OrderStore
	policy    order.TransitionPolicy
	publisher ports.StatusChangePublisher
	config    BulkConfig
	logger    *slog.Logger
}

// NewBulkChangeStatusCommandHandler creates the bulk coordinator.
// The publisher may be nil when notifications are not wired.
func NewBulkChangeStatusCommandHandler(
	store ports.OrderStore,
	policy order.TransitionPolicy,
	publisher ports.StatusChangePublisher,
	config BulkConfig,
	logger *slog.Logger,
) BulkChangeStatusCommandHandler {
	return BulkChangeStatusCommandHandler{
		store:     store,
		policy:    policy,
		publisher: publisher,
		config:    config.withDefaults(),
		logger:    logger.With("component", "bulk_change_status"),
	}
}

// itemResult is the outcome of one item apply, indexed by request position.
type itemResult struct {
	failed bool
	reason FailureReason
	err    error
}

// Handle runs the batch and returns a complete Manifest. The returned error
// is non-nil only for a malformed command; per-item failures are reported in
// the manifest, never as an error.
func (h BulkChangeStatusCommandHandler) Handle(
	ctx context.Context,
	command BulkChangeStatusCommand,
) (Manifest, error) {
	if err := command.Validate(); err != nil {
		return Manifest{}, err
	}

	ids := command.OrderIDs()
	results := make([]itemResult, len(ids))

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < h.config.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				// Cancellation observed: this item has not started, record it
				// as cancelled instead of beginning new work.
				if ctx.Err() != nil {
					results[idx] = itemResult{failed: true, reason: ReasonCancelled}
					continue
				}
				results[idx] = h.applyOne(ctx, ids[idx], command.Target())
			}
		}()
	}

	for idx := range ids {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	manifest := Manifest{
		Succeeded: make([]kernel.UUID, 0, len(ids)),
		Failed:    make([]ItemFailure, 0),
	}
	for idx, result := range results {
		if result.failed {
			manifest.Failed = append(manifest.Failed, ItemFailure{
				OrderID: ids[idx],
				Reason:  result.reason,
				Err:     result.err,
			})
			continue
		}
		manifest.Succeeded = append(manifest.Succeeded, ids[idx])
	}

	if manifest.HasFailures() {
		h.logger.InfoContext(ctx, "bulk status change completed with failures",
			"target", command.Target().String(),
			"requested", len(ids),
			"succeeded", len(manifest.Succeeded),
			"failed", len(manifest.Failed),
		)
	}

	return manifest, nil
}

// applyOne runs a single item through lookup, transition validation, and
// commit under its own deadline. The item context is detached from the batch
// context: a batch cancellation must not interrupt an item already in flight.
func (h BulkChangeStatusCommandHandler) applyOne(
	ctx context.Context,
	id kernel.UUID,
	target order.Status,
) itemResult {
	itemCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.config.ItemTimeout)
	defer cancel()

	aggregate, err := h.store.Get(itemCtx, id)
	if err != nil {
		return classifyItemError(err)
	}

	oldStatus := aggregate.Status()
	if err = aggregate.ChangeStatus(h.policy, target); err != nil {
		return classifyItemError(err)
	}

	if err = h.store.Update(itemCtx, aggregate); err != nil {
		return classifyItemError(err)
	}

	publishStatusChanged(itemCtx, h.publisher, h.logger, ports.StatusChangedEvent{
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.OrderNumber(),
		OldStatus:   oldStatus,
		NewStatus:   aggregate.Status(),
		OccurredAt:  time.Now(),
	})

	return itemResult{}
}

// classifyItemError maps a failed apply to its manifest reason code.
func classifyItemError(err error) itemResult {
	reason := ReasonInternal
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		reason = ReasonNotFound
	case errors.Is(err, order.ErrInvalidTransition):
		reason = ReasonInvalidTransition
	case errors.Is(err, errs.ErrConcurrencyConflict):
		reason = ReasonConcurrencyConflict
	case errors.Is(err, context.DeadlineExceeded):
		reason = ReasonTimeout
	}
	return itemResult{failed: true, reason: reason, err: err}
}

package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// OrderStore is the authoritative collection of order aggregates for one
// vendor. Implementations must serialize writes to the same order id so a
// concurrent single edit and bulk edit cannot interleave into a lost update;
// writes to different ids may proceed in parallel. Orders are never
// physically deleted.
type OrderStore interface {
	// Add persists a new order aggregate.
	// Fails if the id or the order number already exists in the vendor's scope.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Returns an error wrapping errs.ErrObjectNotFound when the order does not
	// exist, and errs.ErrConcurrencyConflict when the stored version no longer
	// matches the version the aggregate was loaded with.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an error wrapping errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll returns a point-in-time snapshot of every order in the store.
	// The result is a copy, not a live view: readers may use it concurrently
	// with in-flight writes without further synchronization.
	GetAll(ctx context.Context) ([]*order.Order, error)
}

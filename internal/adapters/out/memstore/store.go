// Package memstore provides the in-memory OrderStore implementation.
// It is the authoritative per-vendor order collection for deployments that
// do not need durability, and the store used by unit tests. Aggregates are
// stored and returned as copies, so readers always see point-in-time
// snapshots regardless of concurrent writes.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// Store is an in-memory OrderStore. Writes to the same order id are
// serialized by a per-order lock; writes to different ids proceed in
// parallel. Lost updates are detected with optimistic versioning: Update
// requires the aggregate's loaded version to match the stored one.
type Store struct {
	mu      sync.RWMutex
	byID    map[kernel.UUID]*order.Order
	numbers map[string]kernel.UUID

	locksMu sync.Mutex
	locks   map[kernel.UUID]*sync.Mutex
}

// NewStore creates an empty in-memory order store for one vendor.
func NewStore() *Store {
	return &Store{
		byID:    make(map[kernel.UUID]*order.Order),
		numbers: make(map[string]kernel.UUID),
		locks:   make(map[kernel.UUID]*sync.Mutex),
	}
}

// Add persists a new order. The id and order number must be unique within
// the store.
func (s *Store) Add(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[aggregate.ID()]; exists {
		return errs.NewValueIsInvalidErrorWithCause(
			"order id",
			fmt.Errorf("order %s already exists", aggregate.ID()),
		)
	}
	if _, exists := s.numbers[aggregate.OrderNumber()]; exists {
		return errs.NewValueIsInvalidErrorWithCause(
			"order number",
			fmt.Errorf("order number %s already exists", aggregate.OrderNumber()),
		)
	}

	stored, err := cloneWithVersion(aggregate, aggregate.Version())
	if err != nil {
		return err
	}

	s.byID[stored.ID()] = stored
	s.numbers[stored.OrderNumber()] = stored.ID()
	return nil
}

// Update commits changes to an existing order. The write is serialized with
// any other write to the same id, and rejected with a concurrency conflict
// when the stored version has moved past the version the aggregate was
// loaded with.
func (s *Store) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	lock := s.orderLock(aggregate.ID())
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	stored, exists := s.byID[aggregate.ID()]
	s.mu.RUnlock()
	if !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if stored.Version() != aggregate.Version() {
		return errs.NewConcurrencyConflictErrorWithCause(
			"order", aggregate.ID().String(),
			fmt.Errorf("stored version is %d, loaded version is %d",
				stored.Version(), aggregate.Version()),
		)
	}

	updated, err := cloneWithVersion(aggregate, aggregate.Version()+1)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.byID[updated.ID()] = updated
	s.mu.Unlock()
	return nil
}

// Get retrieves a copy of an order by id.
func (s *Store) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	stored, exists := s.byID[id]
	s.mu.RUnlock()
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return cloneWithVersion(stored, stored.Version())
}

// GetAll returns a point-in-time snapshot of every order in the store.
func (s *Store) GetAll(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]*order.Order, 0, len(s.byID))
	for _, stored := range s.byID {
		copied, err := cloneWithVersion(stored, stored.Version())
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, copied)
	}
	return snapshot, nil
}

// Size returns the current number of orders. Used by statistics tests.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// orderLock returns the serialization lock for an order id, creating it on
// first use. Orders are never deleted, so the lock map only grows with the
// order set.
func (s *Store) orderLock(id kernel.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// cloneWithVersion rebuilds an aggregate copy through the domain constructor
// so stored state stays isolated from caller mutation.
func cloneWithVersion(aggregate *order.Order, version int64) (*order.Order, error) {
	return order.RestoreOrder(
		aggregate.ID(),
		aggregate.OrderNumber(),
		aggregate.Customer(),
		aggregate.Items(),
		aggregate.ShippingAddress(),
		aggregate.Status(),
		aggregate.Subtotal(),
		aggregate.Shipping(),
		aggregate.Tax(),
		aggregate.Total(),
		aggregate.TrackingNumber(),
		aggregate.CustomerNotes(),
		aggregate.CreatedAt(),
		version,
	)
}

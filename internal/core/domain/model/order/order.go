package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrTotalMismatch is returned when the monetary invariant
	// total == subtotal + shipping + tax does not hold exactly.
	ErrTotalMismatch = errors.New("total must equal subtotal + shipping + tax")
)

// Order is a customer purchase record owned by one vendor. It is the aggregate
// root of this core: all state the engine owns lives here, and every mutation
// goes through a validated method.
//
// Invariants:
//   - id is a valid UUID and orderNumber is non-empty (unique per vendor,
//     enforced by the store)
//   - items is non-empty; each item has quantity >= 1 and unit price >= 0
//   - status is always a member of the defined enum
//   - total == subtotal + shipping + tax, exactly, at creation and after any
//     mutation (status changes never alter amounts)
//   - createdAt is immutable
//
// Orders are never physically deleted: cancelled and refunded are terminal,
// retained states.
type Order struct {
	id              kernel.UUID
	orderNumber     string
	customer        Customer
	items           []Item
	shippingAddress Address
	status          Status
	subtotal        kernel.Money
	shipping        kernel.Money
	tax             kernel.Money
	total           kernel.Money
	trackingNumber  string
	customerNotes   string
	createdAt       time.Time

	// version supports optimistic concurrency in durable stores.
	// Zero for fresh orders; incremented by the store on each committed write.
	version int64

	isConstructed bool
}

// NewOrder creates a new Order in Pending status, validating every invariant.
// Orders arrive from the ingestion side already populated; this constructor is
// the single gate through which they enter the engine.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customer Customer,
	items []Item,
	shippingAddress Address,
	subtotal, shipping, tax, total kernel.Money,
	customerNotes string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		customer:        customer,
		shippingAddress: shippingAddress,
		subtotal:        subtotal,
		shipping:        shipping,
		tax:             tax,
		total:           total,
		customerNotes:   customerNotes,
		status:          Pending,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setItems(items),
		o.setCreatedAt(createdAt),
		o.validateTotal(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an Order from persistence, re-validating all
// invariants including the stored status and monetary amounts.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customer Customer,
	items []Item,
	shippingAddress Address,
	status Status,
	subtotal, shipping, tax, total kernel.Money,
	trackingNumber string,
	customerNotes string,
	createdAt time.Time,
	version int64,
) (*Order, error) {
	o, err := NewOrder(
		id, orderNumber, customer, items, shippingAddress,
		subtotal, shipping, tax, total, customerNotes, createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidErrorWithCause(
			"order version",
			fmt.Errorf("%d is negative", version),
		)
	}

	o.status = status
	o.trackingNumber = trackingNumber
	o.version = version
	return o, nil
}

// Validate ensures the Order was constructed through NewOrder or RestoreOrder.
// Call when accepting orders from external code paths.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order number, unique per vendor.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Customer returns the purchaser on record.
func (o *Order) Customer() Customer {
	return o.customer
}

// Items returns a copy of the order lines. Mutating the returned slice does
// not affect the aggregate.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// ShippingAddress returns the delivery destination.
func (o *Order) ShippingAddress() Address {
	return o.shippingAddress
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Subtotal returns the pre-shipping, pre-tax amount.
func (o *Order) Subtotal() kernel.Money { return o.subtotal }

// Shipping returns the shipping amount.
func (o *Order) Shipping() kernel.Money { return o.shipping }

// Tax returns the tax amount.
func (o *Order) Tax() kernel.Money { return o.tax }

// Total returns the full order amount.
// Always equals Subtotal + Shipping + Tax.
func (o *Order) Total() kernel.Money { return o.total }

// TrackingNumber returns the carrier tracking number, empty until attached.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// CustomerNotes returns free-form notes left by the customer at checkout.
func (o *Order) CustomerNotes() string {
	return o.customerNotes
}

// CreatedAt returns the immutable creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic-concurrency version the order was loaded
// with. Zero for orders not yet persisted.
func (o *Order) Version() int64 {
	return o.version
}

// ChangeStatus transitions the order to target if the policy permits the
// edge from the current status. On rejection the order is left unchanged and
// the returned error wraps ErrInvalidTransition; repeating the same invalid
// request yields the same error. Amounts are never touched.
func (o *Order) ChangeStatus(policy TransitionPolicy, target Status) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := policy.ValidateTransition(o.status, target); err != nil {
		return err
	}

	o.status = target
	return nil
}

// AttachTracking records the carrier tracking number for the order.
// The number must be non-empty; re-attachment overwrites the previous value.
func (o *Order) AttachTracking(trackingNumber string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(trackingNumber) == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	o.trackingNumber = trackingNumber
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOrderNumber validates and sets the human-facing order number.
func (o *Order) setOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

// setItems validates and sets the order lines. Items must be non-empty.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

// setCreatedAt validates and sets the creation timestamp.
func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("order creation time")
	}
	o.createdAt = createdAt
	return nil
}

// validateTotal enforces total == subtotal + shipping + tax with zero tolerance.
func (o *Order) validateTotal() error {
	expected := o.subtotal.Add(o.shipping).Add(o.tax)
	if !o.total.IsEqual(expected) {
		return fmt.Errorf("%w: total is %s, parts sum to %s",
			ErrTotalMismatch, o.total, expected)
	}
	return nil
}

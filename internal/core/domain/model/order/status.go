package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions (default policy, see TransitionPolicy):
//
//	Pending ────> Processing ────> Shipped ────> Delivered
//	   │               │              │              │
//	   └──> Cancelled <┘              └──> Refunded <┘
//
// Cancelled and Refunded are terminal: no transition leaves them.
// Status is a value object that provides string representations for
// persistence and display; the legality of a transition is decided by
// a TransitionPolicy, not by the status itself.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status set at ingestion.
	// Orders in this status await vendor processing.
	Pending

	// Processing indicates the vendor has started fulfilling the order.
	Processing

	// Shipped indicates the order has been handed to a carrier.
	Shipped

	// Delivered indicates the order reached the customer.
	Delivered

	// Cancelled is a terminal state: the order was cancelled before delivery.
	// Cancelled orders are retained, never deleted.
	Cancelled

	// Refunded is a terminal state: the order was refunded after shipment
	// or delivery. Refunded orders are retained, never deleted.
	Refunded
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Processing: "processing",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
		Refunded:   "refunded",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Processing: "processing",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
		Refunded:   "refunded",
	}
}

// StatusFromString parses a status from its lowercase string form,
// e.g. "pending" or "shipped". Used when reconstructing orders from
// persistence and when parsing statuses arriving from external callers.
//
// Returns an error for unrecognized values; "all" is not a status and is
// handled by query filters, not here.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is a member of the defined enum.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the lowercase name of the status, e.g. "pending".
// Returns "unknown" for invalid values. Implements fmt.Stringer and is
// safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transitions are permitted out of this status
// under any policy. Cancelled and Refunded orders are retained as-is.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Refunded
}

// AllStatuses returns every valid status, for iteration in statistics
// and filter validation. Order is stable: lifecycle order then terminals.
func AllStatuses() []Status {
	return []Status{Pending, Processing, Shipped, Delivered, Cancelled, Refunded}
}

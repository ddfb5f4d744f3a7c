package queries

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrOrderStatisticsQueryIsNotConstructed = errors.New(
	"OrderStatisticsQuery must be created via NewOrderStatisticsQuery constructor",
)

// StatisticsSnapshot is the derived statistics view over one store snapshot.
// It is a value, never independently mutable state: callers wanting
// period-over-period comparison capture one and pass it back later as the
// baseline.
type StatisticsSnapshot struct {
	TotalOrders    int
	CountsByStatus map[order.Status]int
	// RevenueToday sums totals of orders created on the as-of local
	// calendar date.
	RevenueToday kernel.Money
	// TotalRevenue sums totals across the whole (windowed) snapshot.
	TotalRevenue kernel.Money
	// AverageOrderValue is TotalRevenue / TotalOrders, zero when empty.
	AverageOrderValue kernel.Money
	CapturedAt        time.Time
}

// StatisticsChange reports period-over-period percentage changes against a
// caller-supplied baseline. All fields are zero (neutral) when no baseline
// was supplied; values are never fabricated.
type StatisticsChange struct {
	TotalOrdersPct       float64
	RevenueTodayPct      float64
	AverageOrderValuePct float64
}

// OrderStatisticsResponse bundles the current snapshot with the change
// against the optional baseline.
type OrderStatisticsResponse struct {
	Current StatisticsSnapshot
	Change  StatisticsChange
}

// OrderStatisticsQuery derives counts and revenue from a store snapshot,
// optionally restricted to a creation-date window.
//
// Example:
//
//	query, err := NewOrderStatisticsQuery(time.Time{}, time.Time{}, vendorTZ, time.Now(), nil)
//	if err != nil {
//	    return err
//	}
//	stats, err := handler.Handle(ctx, query)
type OrderStatisticsQuery struct {
	windowFrom time.Time
	windowTo   time.Time
	location   *time.Location
	asOf       time.Time
	baseline   *StatisticsSnapshot

	guard guard.ConstructorGuard
}

// NewOrderStatisticsQuery creates a validated statistics query.
//
// windowFrom/windowTo optionally restrict the snapshot by creation time
// (zero values mean unbounded). location is the vendor's timezone used to
// resolve "today"; nil falls back to time.Local. asOf anchors "today";
// a zero value means now. baseline is the previously captured snapshot for
// period comparison; nil reports neutral change.
func NewOrderStatisticsQuery(
	windowFrom, windowTo time.Time,
	location *time.Location,
	asOf time.Time,
	baseline *StatisticsSnapshot,
) (OrderStatisticsQuery, error) {
	if !windowFrom.IsZero() && !windowTo.IsZero() && windowTo.Before(windowFrom) {
		return OrderStatisticsQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"statistics window",
			fmt.Errorf("to %s precedes from %s", windowTo, windowFrom),
		)
	}
	if location == nil {
		location = time.Local
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}

	return OrderStatisticsQuery{
		windowFrom: windowFrom,
		windowTo:   windowTo,
		location:   location,
		asOf:       asOf,
		baseline:   baseline,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// WindowFrom returns the lower window bound, zero when unbounded.
func (q OrderStatisticsQuery) WindowFrom() time.Time { return q.windowFrom }

// WindowTo returns the upper window bound, zero when unbounded.
func (q OrderStatisticsQuery) WindowTo() time.Time { return q.windowTo }

// Location returns the vendor timezone used to resolve "today".
func (q OrderStatisticsQuery) Location() *time.Location { return q.location }

// AsOf returns the instant anchoring "today".
func (q OrderStatisticsQuery) AsOf() time.Time { return q.asOf }

// Baseline returns the caller-supplied comparison snapshot, nil when absent.
func (q OrderStatisticsQuery) Baseline() *StatisticsSnapshot { return q.baseline }

// Validate ensures the query was created through the constructor.
func (q OrderStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrOrderStatisticsQueryIsNotConstructed)
}

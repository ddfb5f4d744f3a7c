// Package queries contains read-only operations over order store snapshots.
// Queries never mutate state: each handler takes a point-in-time snapshot
// from the store and derives its result from that copy, so reads may run
// concurrently with writes without coordination.
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

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// SortKey selects the ordering of a filtered result set.
type SortKey string

const (
	// SortNewest orders by creation time, most recent first.
	SortNewest SortKey = "newest"
	// SortOldest orders by creation time, oldest first.
	SortOldest SortKey = "oldest"
	// SortAmountDesc orders by total amount, highest first.
	SortAmountDesc SortKey = "amount_desc"
	// SortAmountAsc orders by total amount, lowest first.
	SortAmountAsc SortKey = "amount_asc"
)

// SortKeyFromString parses a sort key, rejecting unknown values.
func SortKeyFromString(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortNewest, SortOldest, SortAmountDesc, SortAmountAsc:
		return SortKey(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"sort key",
			fmt.Errorf("%q is not a valid sort key", s),
		)
	}
}

// Filter is the predicate set applied to a snapshot. Predicates combine
// conjunctively; zero values mean "unbounded".
//
// This shape mirrors the filter surface UI/API callers pass in:
// {search, status|"all", dateRange{from,to}, amountRange{min,max}}.
type Filter struct {
	// Search matches case-insensitive substrings of the order number,
	// customer name, or customer email. Empty matches everything.
	Search string

	// Status restricts to a single status; nil means "all".
	Status *order.Status

	// CreatedFrom / CreatedTo bound the creation time (inclusive).
	// Zero values leave the corresponding side unbounded.
	CreatedFrom time.Time
	CreatedTo   time.Time

	// MinTotal / MaxTotal bound the order total (inclusive).
	// Nil values leave the corresponding side unbounded.
	MinTotal *kernel.Money
	MaxTotal *kernel.Money
}

// validate rejects malformed filter input.
func (f Filter) validate() error {
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	if !f.CreatedFrom.IsZero() && !f.CreatedTo.IsZero() && f.CreatedTo.Before(f.CreatedFrom) {
		return errs.NewValueIsInvalidErrorWithCause(
			"date range",
			fmt.Errorf("to %s precedes from %s", f.CreatedTo, f.CreatedFrom),
		)
	}
	if f.MinTotal != nil && f.MaxTotal != nil && !f.MaxTotal.IsGreaterOrEqual(*f.MinTotal) {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount range",
			fmt.Errorf("max %s is below min %s", f.MaxTotal, f.MinTotal),
		)
	}
	return nil
}

// ListOrdersQuery retrieves the orders matching a filter, sorted.
//
// Example:
//
//	status := order.Pending
//	query, err := NewListOrdersQuery(Filter{Status: &status}, SortNewest)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	filter Filter
	sort   SortKey

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a validated list query.
func NewListOrdersQuery(filter Filter, sort SortKey) (ListOrdersQuery, error) {
	if err := filter.validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if _, err := SortKeyFromString(string(sort)); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		filter: filter,
		sort:   sort,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Filter returns the query's predicate set.
func (q ListOrdersQuery) Filter() Filter {
	return q.filter
}

// Sort returns the query's sort key.
func (q ListOrdersQuery) Sort() SortKey {
	return q.sort
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// OrderSummary is the read-model row returned by ListOrdersQuery.
// It carries the fields the table, export, and API surfaces render.
type OrderSummary struct {
	ID             kernel.UUID
	OrderNumber    string
	CustomerName   string
	CustomerEmail  string
	Status         order.Status
	Total          kernel.Money
	TrackingNumber string
	CreatedAt      time.Time
}

package queries

import (
	"context"
	"sort"
	"strings"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
)

// ListOrdersQueryHandler is the filter + sort pipeline over a store
// snapshot. It is a pure read: predicates are applied conjunctively, the
// sort runs after filtering, and ties are broken by id ascending so repeated
// calls on an unchanged snapshot return identical sequences.
//
// Backend failures while taking the snapshot are surfaced to the caller,
// who may retry or fall back to a previously captured result.
type ListOrdersQueryHandler struct {
	store ports.OrderStore
}

// NewListOrdersQueryHandler creates a handler bound to an order store.
func NewListOrdersQueryHandler(store ports.OrderStore) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{store: store}
}

// Handle executes the query. An empty result is a valid outcome, not an error.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filter := query.Filter()
	matched := make([]*order.Order, 0, len(snapshot))
	for _, o := range snapshot {
		if matchesFilter(o, filter) {
			matched = append(matched, o)
		}
	}

	sortOrders(matched, query.Sort())

	summaries := make([]OrderSummary, len(matched))
	for i, o := range matched {
		summaries[i] = OrderSummary{
			ID:             o.ID(),
			OrderNumber:    o.OrderNumber(),
			CustomerName:   o.Customer().Name(),
			CustomerEmail:  o.Customer().Email(),
			Status:         o.Status(),
			Total:          o.Total(),
			TrackingNumber: o.TrackingNumber(),
			CreatedAt:      o.CreatedAt(),
		}
	}
	return summaries, nil
}

// matchesFilter applies every predicate of the filter; all must hold.
func matchesFilter(o *order.Order, filter Filter) bool {
	if filter.Search != "" && !matchesSearch(o, filter.Search) {
		return false
	}
	if filter.Status != nil && o.Status() != *filter.Status {
		return false
	}
	if !filter.CreatedFrom.IsZero() && o.CreatedAt().Before(filter.CreatedFrom) {
		return false
	}
	if !filter.CreatedTo.IsZero() && o.CreatedAt().After(filter.CreatedTo) {
		return false
	}
	if filter.MinTotal != nil && !o.Total().IsGreaterOrEqual(*filter.MinTotal) {
		return false
	}
	if filter.MaxTotal != nil && !filter.MaxTotal.IsGreaterOrEqual(o.Total()) {
		return false
	}
	return true
}

// matchesSearch checks the free-text term against order number, customer
// name, and customer email, case-insensitively.
func matchesSearch(o *order.Order, term string) bool {
	needle := strings.ToLower(term)
	for _, haystack := range []string{
		o.OrderNumber(),
		o.Customer().Name(),
		o.Customer().Email(),
	} {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

// sortOrders sorts in place by the requested key, breaking every tie by id
// ascending to keep the ordering reproducible.
func sortOrders(orders []*order.Order, key SortKey) {
	sort.Slice(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		switch key {
		case SortNewest:
			if !a.CreatedAt().Equal(b.CreatedAt()) {
				return a.CreatedAt().After(b.CreatedAt())
			}
		case SortOldest:
			if !a.CreatedAt().Equal(b.CreatedAt()) {
				return a.CreatedAt().Before(b.CreatedAt())
			}
		case SortAmountDesc:
			if !a.Total().IsEqual(b.Total()) {
				return a.Total().Cents() > b.Total().Cents()
			}
		case SortAmountAsc:
			if !a.Total().IsEqual(b.Total()) {
				return a.Total().Cents() < b.Total().Cents()
			}
		}
		return a.ID().String() < b.ID().String()
	})
}

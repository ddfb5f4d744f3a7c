package queries

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrActivityFeedQueryIsNotConstructed = errors.New(
	"ActivityFeedQuery must be created via NewActivityFeedQuery constructor",
)

// DefaultActivityFeedLimit is the number of entries returned when the
// caller does not ask for a specific count.
const DefaultActivityFeedLimit = 5

// ActivityFeedQuery retrieves the most recent status mutations as
// human-readable entries, most recent first.
type ActivityFeedQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewActivityFeedQuery creates a validated activity feed query.
// A limit of zero falls back to DefaultActivityFeedLimit; negative limits
// are rejected.
func NewActivityFeedQuery(limit int) (ActivityFeedQuery, error) {
	if limit < 0 {
		return ActivityFeedQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"feed limit",
			fmt.Errorf("%d is negative", limit),
		)
	}
	if limit == 0 {
		limit = DefaultActivityFeedLimit
	}

	return ActivityFeedQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Limit returns the maximum number of entries to return.
func (q ActivityFeedQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q ActivityFeedQuery) Validate() error {
	return q.guard.Validate(ErrActivityFeedQueryIsNotConstructed)
}

// ActivityEntry is one formatted feed line.
type ActivityEntry struct {
	Title       string
	Description string
	OrderNumber string
	Status      order.Status
	Timestamp   time.Time
}

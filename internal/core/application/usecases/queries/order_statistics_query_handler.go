package queries

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
)

// OrderStatisticsQueryHandler derives live statistics from a store
// snapshot. Statistics are a view, recomputed on demand; the handler keeps
// no state between calls.
type OrderStatisticsQueryHandler struct {
	store ports.OrderStore
}

// NewOrderStatisticsQueryHandler creates a handler bound to an order store.
func NewOrderStatisticsQueryHandler(store ports.OrderStore) OrderStatisticsQueryHandler {
	return OrderStatisticsQueryHandler{store: store}
}

// Handle computes the statistics snapshot and, when a baseline was
// supplied, the period-over-period change. Without a baseline the change is
// neutral zero, never fabricated.
func (h OrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query OrderStatisticsQuery,
) (OrderStatisticsResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderStatisticsResponse{}, err
	}

	snapshot, err := h.store.GetAll(ctx)
	if err != nil {
		return OrderStatisticsResponse{}, err
	}

	current := computeStatistics(snapshot, query)

	response := OrderStatisticsResponse{Current: current}
	if baseline := query.Baseline(); baseline != nil {
		response.Change = StatisticsChange{
			TotalOrdersPct: percentChange(
				float64(baseline.TotalOrders), float64(current.TotalOrders)),
			RevenueTodayPct: percentChange(
				float64(baseline.RevenueToday.Cents()), float64(current.RevenueToday.Cents())),
			AverageOrderValuePct: percentChange(
				float64(baseline.AverageOrderValue.Cents()), float64(current.AverageOrderValue.Cents())),
		}
	}
	return response, nil
}

// computeStatistics folds the snapshot into counts and revenue.
func computeStatistics(snapshot []*order.Order, query OrderStatisticsQuery) StatisticsSnapshot {
	counts := make(map[order.Status]int, len(order.AllStatuses()))
	for _, s := range order.AllStatuses() {
		counts[s] = 0
	}

	localToday := query.AsOf().In(query.Location())
	todayYear, todayMonth, todayDay := localToday.Date()

	var totalOrders int
	var totalRevenue, revenueToday int64

	for _, o := range snapshot {
		if !query.WindowFrom().IsZero() && o.CreatedAt().Before(query.WindowFrom()) {
			continue
		}
		if !query.WindowTo().IsZero() && o.CreatedAt().After(query.WindowTo()) {
			continue
		}

		totalOrders++
		counts[o.Status()]++
		totalRevenue += o.Total().Cents()

		year, month, day := o.CreatedAt().In(query.Location()).Date()
		if year == todayYear && month == todayMonth && day == todayDay {
			revenueToday += o.Total().Cents()
		}
	}

	var average int64
	if totalOrders > 0 {
		average = totalRevenue / int64(totalOrders)
	}

	return StatisticsSnapshot{
		TotalOrders:       totalOrders,
		CountsByStatus:    counts,
		RevenueToday:      kernel.MustNewMoney(revenueToday),
		TotalRevenue:      kernel.MustNewMoney(totalRevenue),
		AverageOrderValue: kernel.MustNewMoney(average),
		CapturedAt:        time.Now(),
	}
}

// percentChange returns the relative change in percent, neutral zero when
// the baseline value is zero.
func percentChange(previous, current float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

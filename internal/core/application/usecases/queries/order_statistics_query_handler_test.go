package queries_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/memstore"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatisticsQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2026, time.March, 12, 15, 30, 0, 0, time.UTC)

	seed := func(t *testing.T) *memstore.Store {
		store := memstore.NewStore()
		// Two orders created "today", one yesterday.
		seedOrder(t, store, seedSpec{
			orderNumber: "ORD-S1", customerName: "Ada Byron", customerEmail: "ada@example.com",
			status: order.Pending, totalCents: 4000, createdAt: asOf.Add(-2 * time.Hour),
		})
		seedOrder(t, store, seedSpec{
			orderNumber: "ORD-S2", customerName: "Brian Kern", customerEmail: "brian@example.com",
			status: order.Shipped, totalCents: 6000, createdAt: asOf.Add(-time.Hour),
		})
		seedOrder(t, store, seedSpec{
			orderNumber: "ORD-S3", customerName: "Carol Voss", customerEmail: "carol@example.com",
			status: order.Pending, totalCents: 2000, createdAt: asOf.Add(-24 * time.Hour),
		})
		return store
	}

	t.Run("counts, revenue, and average", func(t *testing.T) {
		handler := queries.NewOrderStatisticsQueryHandler(seed(t))

		query, err := queries.NewOrderStatisticsQuery(
			time.Time{}, time.Time{}, time.UTC, asOf, nil)
		require.NoError(t, err)

		response, err := handler.Handle(ctx, query)
		require.NoError(t, err)

		current := response.Current
		assert.Equal(t, 3, current.TotalOrders)
		assert.Equal(t, 2, current.CountsByStatus[order.Pending])
		assert.Equal(t, 1, current.CountsByStatus[order.Shipped])
		assert.Equal(t, 0, current.CountsByStatus[order.Cancelled])
		assert.Equal(t, int64(12000), current.TotalRevenue.Cents())
		assert.Equal(t, int64(10000), current.RevenueToday.Cents())
		assert.Equal(t, int64(4000), current.AverageOrderValue.Cents())
	})

	t.Run("today is resolved in the vendor timezone", func(t *testing.T) {
		handler := queries.NewOrderStatisticsQueryHandler(seed(t))

		// Ten hours ahead of UTC: 15:30 UTC is 01:30 next day local, so only
		// the order created one UTC hour before the as-of instant crosses
		// midnight with it and counts toward today.
		east := time.FixedZone("UTC+10", 10*60*60)
		query, err := queries.NewOrderStatisticsQuery(
			time.Time{}, time.Time{}, east, asOf, nil)
		require.NoError(t, err)

		response, err := handler.Handle(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, int64(6000), response.Current.RevenueToday.Cents())
	})

	t.Run("window restricts the snapshot", func(t *testing.T) {
		handler := queries.NewOrderStatisticsQueryHandler(seed(t))

		query, err := queries.NewOrderStatisticsQuery(
			asOf.Add(-3*time.Hour), asOf, time.UTC, asOf, nil)
		require.NoError(t, err)

		response, err := handler.Handle(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, 2, response.Current.TotalOrders)
		assert.Equal(t, int64(10000), response.Current.TotalRevenue.Cents())
	})

	t.Run("change against baseline", func(t *testing.T) {
		handler := queries.NewOrderStatisticsQueryHandler(seed(t))

		baseline := &queries.StatisticsSnapshot{
			TotalOrders:       2,
			RevenueToday:      kernel.MustNewMoney(5000),
			AverageOrderValue: kernel.MustNewMoney(2000),
		}
		query, err := queries.NewOrderStatisticsQuery(
			time.Time{}, time.Time{}, time.UTC, asOf, baseline)
		require.NoError(t, err)

		response, err := handler.Handle(ctx, query)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, response.Change.TotalOrdersPct, 0.001)
		assert.InDelta(t, 100.0, response.Change.RevenueTodayPct, 0.001)
		assert.InDelta(t, 100.0, response.Change.AverageOrderValuePct, 0.001)
	})

	t.Run("no baseline reports neutral change", func(t *testing.T) {
		handler := queries.NewOrderStatisticsQueryHandler(seed(t))

		query, err := queries.NewOrderStatisticsQuery(
			time.Time{}, time.Time{}, time.UTC, asOf, nil)
		require.NoError(t, err)

		response, err := handler.Handle(ctx, query)
		require.NoError(t, err)
		assert.Zero(t, response.Change)
	})

	t.Run("zero baseline value yields neutral percentage", func(t *testing.T) {
		handler := queries.NewOrderStatisticsQueryHandler(seed(t))

		query, err := queries.NewOrderStatisticsQuery(
			time.Time{}, time.Time{}, time.UTC, asOf, &queries.StatisticsSnapshot{})
		require.NoError(t, err)

		response, err := handler.Handle(ctx, query)
		require.NoError(t, err)
		assert.Zero(t, response.Change.TotalOrdersPct)
		assert.Zero(t, response.Change.RevenueTodayPct)
	})

	t.Run("empty store yields zero snapshot", func(t *testing.T) {
		handler := queries.NewOrderStatisticsQueryHandler(memstore.NewStore())

		query, err := queries.NewOrderStatisticsQuery(
			time.Time{}, time.Time{}, time.UTC, asOf, nil)
		require.NoError(t, err)

		response, err := handler.Handle(ctx, query)
		require.NoError(t, err)
		assert.Zero(t, response.Current.TotalOrders)
		assert.Zero(t, response.Current.TotalRevenue.Cents())
		assert.Zero(t, response.Current.AverageOrderValue.Cents())
	})

	t.Run("inverted window is rejected", func(t *testing.T) {
		_, err := queries.NewOrderStatisticsQuery(
			asOf, asOf.Add(-time.Hour), time.UTC, asOf, nil)
		require.Error(t, err)
	})
}

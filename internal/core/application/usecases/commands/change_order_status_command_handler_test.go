package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/eventlog"
	"orderdesk/internal/adapters/out/memstore"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makeOrder(t *testing.T, orderNumber string) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Jamie Rivera", "jamie@example.com", "")
	require.NoError(t, err)
	addr, err := order.NewAddress("Jamie Rivera", "1 Market St", "Springfield", "IL", "62701", "US", "")
	require.NoError(t, err)
	item, err := order.NewItem("prod-001", "Ceramic Mug", "", 1, kernel.MustNewMoney(5000))
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), orderNumber, customer, []order.Item{item}, addr,
		kernel.MustNewMoney(5000), kernel.MustNewMoney(0), kernel.MustNewMoney(0), kernel.MustNewMoney(5000),
		"", time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestChangeOrderStatusCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	policy := order.DefaultTransitionPolicy()

	t.Run("commits a valid transition and emits an event", func(t *testing.T) {
		store := memstore.NewStore()
		log := eventlog.NewLog(10)
		handler := commands.NewChangeOrderStatusCommandHandler(store, policy, log, testLogger())

		o := makeOrder(t, "ORD-1001")
		require.NoError(t, store.Add(ctx, o))

		cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.Processing)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(ctx, cmd))

		got, err := store.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Processing, got.Status())

		events, err := log.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, order.Pending, events[0].OldStatus)
		assert.Equal(t, order.Processing, events[0].NewStatus)
		assert.Equal(t, "ORD-1001", events[0].OrderNumber)
	})

	t.Run("invalid transition leaves the order unchanged and emits nothing", func(t *testing.T) {
		store := memstore.NewStore()
		log := eventlog.NewLog(10)
		handler := commands.NewChangeOrderStatusCommandHandler(store, policy, log, testLogger())

		o := makeOrder(t, "ORD-1002")
		require.NoError(t, store.Add(ctx, o))

		cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.Delivered)
		require.NoError(t, err)

		err = handler.Handle(ctx, cmd)
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)

		got, err := store.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Pending, got.Status())
		assert.Equal(t, 0, log.Len())
	})

	t.Run("unknown order fails with not found", func(t *testing.T) {
		store := memstore.NewStore()
		handler := commands.NewChangeOrderStatusCommandHandler(store, policy, nil, testLogger())

		cmd, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), order.Processing)
		require.NoError(t, err)

		err = handler.Handle(ctx, cmd)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("zero value command is rejected", func(t *testing.T) {
		handler := commands.NewChangeOrderStatusCommandHandler(memstore.NewStore(), policy, nil, testLogger())

		var cmd commands.ChangeOrderStatusCommand
		err := handler.Handle(ctx, cmd)
		require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
	})
}

func TestAttachTrackingCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	handler := commands.NewAttachTrackingCommandHandler(store)

	o := makeOrder(t, "ORD-2001")
	require.NoError(t, store.Add(ctx, o))

	t.Run("attaches tracking number", func(t *testing.T) {
		cmd, err := commands.NewAttachTrackingCommand(o.ID(), "1Z999AA10123456784")
		require.NoError(t, err)
		require.NoError(t, handler.Handle(ctx, cmd))

		got, err := store.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, "1Z999AA10123456784", got.TrackingNumber())
	})

	t.Run("unknown order fails with not found", func(t *testing.T) {
		cmd, err := commands.NewAttachTrackingCommand(kernel.NewUUID(), "1Z999AA10123456784")
		require.NoError(t, err)

		err = handler.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("blank tracking number is rejected at construction", func(t *testing.T) {
		_, err := commands.NewAttachTrackingCommand(o.ID(), "  ")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

package order_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTransitionPolicy_AllowedEdges(t *testing.T) {
	policy := order.DefaultTransitionPolicy()

	allowed := []order.Transition{
		{From: order.Pending, To: order.Processing},
		{From: order.Pending, To: order.Cancelled},
		{From: order.Processing, To: order.Shipped},
		{From: order.Processing, To: order.Cancelled},
		{From: order.Shipped, To: order.Delivered},
		{From: order.Shipped, To: order.Refunded},
		{From: order.Delivered, To: order.Refunded},
	}

	for _, edge := range allowed {
		assert.True(t, policy.CanTransition(edge.From, edge.To),
			"%s -> %s should be allowed", edge.From, edge.To)
		assert.NoError(t, policy.ValidateTransition(edge.From, edge.To))
	}
}

func TestDefaultTransitionPolicy_RejectedEdges(t *testing.T) {
	policy := order.DefaultTransitionPolicy()

	t.Run("every edge not in the table is rejected", func(t *testing.T) {
		for _, from := range order.AllStatuses() {
			for _, to := range order.AllStatuses() {
				if policy.CanTransition(from, to) {
					continue
				}
				err := policy.ValidateTransition(from, to)
				require.Error(t, err, "%s -> %s", from, to)
				assert.ErrorIs(t, err, order.ErrInvalidTransition)
			}
		}
	})

	t.Run("terminal states have no outgoing edges", func(t *testing.T) {
		for _, from := range []order.Status{order.Cancelled, order.Refunded} {
			for _, to := range order.AllStatuses() {
				assert.False(t, policy.CanTransition(from, to),
					"%s -> %s must not be allowed", from, to)
			}
		}
	})

	t.Run("backward movement is rejected", func(t *testing.T) {
		err := policy.ValidateTransition(order.Delivered, order.Processing)
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("rejection error carries the edge", func(t *testing.T) {
		err := policy.ValidateTransition(order.Delivered, order.Processing)

		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Delivered, transitionErr.From)
		assert.Equal(t, order.Processing, transitionErr.To)
		assert.Equal(t, "invalid status transition: delivered -> processing", err.Error())
	})
}

func TestNewTransitionPolicy(t *testing.T) {
	t.Run("custom graph", func(t *testing.T) {
		policy, err := order.NewTransitionPolicy(
			order.Transition{From: order.Pending, To: order.Shipped},
		)
		require.NoError(t, err)

		assert.True(t, policy.CanTransition(order.Pending, order.Shipped))
		assert.False(t, policy.CanTransition(order.Pending, order.Processing))
	})

	t.Run("empty policy rejects everything", func(t *testing.T) {
		policy, err := order.NewTransitionPolicy()
		require.NoError(t, err)

		for _, from := range order.AllStatuses() {
			for _, to := range order.AllStatuses() {
				assert.False(t, policy.CanTransition(from, to))
			}
		}
	})

	t.Run("invalid endpoint fails construction", func(t *testing.T) {
		_, err := order.NewTransitionPolicy(
			order.Transition{From: order.Unknown, To: order.Processing},
		)
		require.Error(t, err)
	})

	t.Run("self loop fails construction", func(t *testing.T) {
		_, err := order.NewTransitionPolicy(
			order.Transition{From: order.Pending, To: order.Pending},
		)
		require.Error(t, err)
	})

	t.Run("edge leaving a terminal state fails construction", func(t *testing.T) {
		_, err := order.NewTransitionPolicy(
			order.Transition{From: order.Cancelled, To: order.Pending},
		)
		require.Error(t, err)
	})

	t.Run("validate transition rejects invalid statuses before lookup", func(t *testing.T) {
		policy := order.DefaultTransitionPolicy()

		require.Error(t, policy.ValidateTransition(order.Unknown, order.Processing))
		require.Error(t, policy.ValidateTransition(order.Pending, order.Status(42)))
	})
}

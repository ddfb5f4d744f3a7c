package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for status edges not permitted by the
// active TransitionPolicy. Use errors.Is to classify.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError carries the rejected edge. Rejection has no side
// effects: the order under validation is left unchanged, and repeating the
// same request yields the same error.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Transition is a single allowed edge in the status graph.
type Transition struct {
	From Status
	To   Status
}

// TransitionPolicy decides whether a requested status change is legal.
// It is a pure lookup over an explicit allowed-edge set and holds no other
// state, so a single instance can be shared across goroutines.
//
// The product this models never pinned down an exact graph, so the policy is
// injectable: construct a custom one with NewTransitionPolicy, or use
// DefaultTransitionPolicy for the hardened default table.
type TransitionPolicy struct {
	allowed map[Transition]struct{}
}

// NewTransitionPolicy builds a policy from an explicit set of allowed edges.
// Every endpoint must be a valid status; self-loops are rejected since a
// no-op "transition" would still emit a change event.
func NewTransitionPolicy(edges ...Transition) (TransitionPolicy, error) {
	allowed := make(map[Transition]struct{}, len(edges))
	for _, edge := range edges {
		if err := edge.From.Validate(); err != nil {
			return TransitionPolicy{}, err
		}
		if err := edge.To.Validate(); err != nil {
			return TransitionPolicy{}, err
		}
		if edge.From == edge.To {
			return TransitionPolicy{}, fmt.Errorf("self transition %s -> %s is not allowed", edge.From, edge.To)
		}
		if edge.From.IsTerminal() {
			return TransitionPolicy{}, fmt.Errorf("%s is terminal, no transition may leave it", edge.From)
		}
		allowed[edge] = struct{}{}
	}
	return TransitionPolicy{allowed: allowed}, nil
}

// DefaultTransitionPolicy returns the hardened default status graph:
//
//	pending    -> processing, cancelled
//	processing -> shipped, cancelled
//	shipped    -> delivered, refunded
//	delivered  -> refunded
//
// Cancelled and refunded have no outgoing edges.
func DefaultTransitionPolicy() TransitionPolicy {
	policy, err := NewTransitionPolicy(
		Transition{From: Pending, To: Processing},
		Transition{From: Pending, To: Cancelled},
		Transition{From: Processing, To: Shipped},
		Transition{From: Processing, To: Cancelled},
		Transition{From: Shipped, To: Delivered},
		Transition{From: Shipped, To: Refunded},
		Transition{From: Delivered, To: Refunded},
	)
	if err != nil {
		// The default table is static and validated by tests.
		panic(err)
	}
	return policy
}

// CanTransition reports whether the edge from -> to is in the allowed set.
func (p TransitionPolicy) CanTransition(from, to Status) bool {
	_, ok := p.allowed[Transition{From: from, To: to}]
	return ok
}

// ValidateTransition returns nil when from -> to is permitted, or an
// InvalidTransitionError (wrapping ErrInvalidTransition) otherwise.
func (p TransitionPolicy) ValidateTransition(from, to Status) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if !p.CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// Package order contains the order aggregate and its lifecycle rules.
//
// The aggregate root is Order, which owns the customer, line items, shipping
// address, monetary amounts, and status of a single purchase. Status changes
// are validated against an injectable TransitionPolicy, a pure state machine
// over an explicit allowed-edge table; DefaultTransitionPolicy provides the
// hardened default graph.
//
// All types in this package enforce their invariants at construction and are
// either immutable value objects (Customer, Address, Item, Status) or mutated
// only through validated methods (Order).
package order

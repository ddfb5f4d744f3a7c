// Package kernel contains shared value objects used across the domain model.
// These are small immutable types with validation enforced at construction:
// UUID for entity identity and Money for monetary amounts in minor units.
//
// Kernel types carry no business behavior of their own; they exist so that
// aggregates can rely on always-valid building blocks instead of primitives.
package kernel

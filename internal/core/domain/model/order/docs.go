// Package order contains the Order aggregate: its lifecycle state machine,
// the bounded status history, and the optimistic concurrency version that
// protects concurrent mutations.
package order

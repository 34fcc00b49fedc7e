// Package kernel provides core domain primitives and utilities for the routing core.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Zone: A coarse geographic bucket used for pricing and performance segmentation
//   - Rounding helpers implementing the round-half-up convention for money and counts
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel

package ports

import (
	"context"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All writes are version-gated: a mutation only commits when the stored
// version still equals the version the aggregate was loaded with.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateWithVersion persists changes to an existing order, conditioned on
	// the stored concurrency version still equalling loadedVersion. A lost
	// race fails with a version conflict error and leaves storage untouched.
	UpdateWithVersion(ctx context.Context, aggregate *order.Order, loadedVersion int64) error
}

package ports

import (
	"context"

	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/kernel"
)

// CarrierCatalog provides the configured carrier profiles. Rate tables and
// service levels are configuration data, never fetched live from carriers.
type CarrierCatalog interface {
	// All returns every configured carrier profile.
	All(ctx context.Context) ([]*carrier.Profile, error)

	// Get retrieves one carrier profile by id.
	Get(ctx context.Context, id kernel.UUID) (*carrier.Profile, error)
}

// PerformanceProvider supplies per-carrier, per-zone performance snapshots.
// Implementations may cache; callers accept bounded staleness.
type PerformanceProvider interface {
	// Performance returns the snapshot for one (carrier, zone) pair, falling
	// back to flagged default priors when no history exists.
	Performance(ctx context.Context, carrierID kernel.UUID, zone kernel.Zone) (carrier.Performance, error)
}

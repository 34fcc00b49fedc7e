// Package carrierconfig provides the static, in-memory carrier catalog.
// Rate tables and service levels are configuration data loaded at startup;
// nothing here talks to a live carrier API.
package carrierconfig

import (
	"context"
	"sort"

	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/ports"
	"routing/internal/pkg/errs"
)

// StaticCatalog is an immutable CarrierCatalog snapshot. Safe for concurrent
// use; reconfiguration means building a new catalog.
type StaticCatalog struct {
	byID    map[kernel.UUID]*carrier.Profile
	ordered []*carrier.Profile
}

// NewStaticCatalog builds a catalog from the given profiles. Every profile
// must be constructed and ids must be unique.
func NewStaticCatalog(profiles []*carrier.Profile) (*StaticCatalog, error) {
	byID := make(map[kernel.UUID]*carrier.Profile, len(profiles))
	ordered := make([]*carrier.Profile, 0, len(profiles))

	for _, profile := range profiles {
		if err := profile.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byID[profile.ID()]; exists {
			return nil, errs.NewValueIsInvalidError("duplicate carrier id " + profile.ID().String())
		}
		byID[profile.ID()] = profile
		ordered = append(ordered, profile)
	}

	// Stable id order keeps All deterministic regardless of input order.
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID().String() < ordered[j].ID().String()
	})

	return &StaticCatalog{byID: byID, ordered: ordered}, nil
}

var _ ports.CarrierCatalog = (*StaticCatalog)(nil)

// All returns every configured carrier profile in stable id order.
func (c *StaticCatalog) All(_ context.Context) ([]*carrier.Profile, error) {
	profiles := make([]*carrier.Profile, len(c.ordered))
	copy(profiles, c.ordered)
	return profiles, nil
}

// Get retrieves one carrier profile by id.
func (c *StaticCatalog) Get(_ context.Context, id kernel.UUID) (*carrier.Profile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	profile, ok := c.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("carrier", id.String())
	}
	return profile, nil
}

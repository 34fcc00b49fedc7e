package carrier

import (
	"errors"
	"fmt"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/pkg/errs"
)

var (
	// ErrProfileIsNotConstructed is returned when a CarrierProfile instance was
	// not created through the NewProfile factory method.
	ErrProfileIsNotConstructed = errors.New("CarrierProfile must be created via NewProfile constructor")

	// ErrZoneNotServiceable indicates the carrier publishes no service level
	// for the requested zone. Such a carrier cannot be a routing candidate for
	// that shipment.
	ErrZoneNotServiceable = errors.New("zone is not serviceable by carrier")
)

// ServiceLevel declares the promised delivery time for one zone.
type ServiceLevel struct {
	Zone         kernel.Zone
	StandardDays int
	ExpressDays  int
}

// Profile represents a shipping carrier with its static configuration.
// Rate tables and service levels are supplied as configuration data and are
// never fetched live from a third party. Performance metrics are derived on
// demand from the shipment event log, never stored on the profile.
//
// Profile follows these invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - Must carry a constructed rate table
//   - Must publish at least one service level
//   - Can only be created through NewProfile
type Profile struct {
	// id is the unique identifier for the carrier
	id kernel.UUID

	// name is the carrier's display name, also used for deterministic tie-breaks
	name string

	// rateTable is the static pricing configuration
	rateTable RateTable

	// serviceLevels maps each serviceable zone to its delivery promise
	serviceLevels map[kernel.Zone]ServiceLevel

	// isConstructed ensures the profile was created via NewProfile
	isConstructed bool
}

// NewProfile creates a new carrier Profile with validation. This is the only
// way to create a valid Profile.
func NewProfile(id kernel.UUID, name string, rateTable RateTable, levels []ServiceLevel) (*Profile, error) {
	profile := &Profile{
		serviceLevels: make(map[kernel.Zone]ServiceLevel, len(levels)),
		isConstructed: true,
	}

	if err := errors.Join(
		profile.setID(id),
		profile.setName(name),
		profile.setRateTable(rateTable),
		profile.setServiceLevels(levels),
	); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate ensures the Profile instance was properly constructed through NewProfile.
func (p *Profile) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProfileIsNotConstructed
	}
	return nil
}

// ID returns the carrier's unique identifier.
func (p *Profile) ID() kernel.UUID {
	return p.id
}

// Name returns the carrier's display name.
func (p *Profile) Name() string {
	return p.name
}

// RateTable returns the carrier's static pricing configuration.
func (p *Profile) RateTable() RateTable {
	return p.rateTable
}

// Serviceable reports whether the carrier publishes a service level for the zone.
func (p *Profile) Serviceable(zone kernel.Zone) bool {
	_, ok := p.serviceLevels[zone]
	return ok
}

// EstimatedDays returns the promised delivery days for the zone, using the
// express promise when express service is requested.
//
// Returns ErrZoneNotServiceable if the carrier publishes no service level for
// the zone.
func (p *Profile) EstimatedDays(zone kernel.Zone, express bool) (int, error) {
	level, ok := p.serviceLevels[zone]
	if !ok {
		return 0, fmt.Errorf("%w: %s does not serve %s", ErrZoneNotServiceable, p.name, zone)
	}

	if express {
		return level.ExpressDays, nil
	}
	return level.StandardDays, nil
}

func (p *Profile) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Profile) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Profile) setRateTable(rateTable RateTable) error {
	if err := rateTable.Validate(); err != nil {
		return err
	}
	p.rateTable = rateTable
	return nil
}

func (p *Profile) setServiceLevels(levels []ServiceLevel) error {
	if len(levels) == 0 {
		return errs.NewValueIsRequiredError("serviceLevels")
	}

	for _, level := range levels {
		if err := level.Zone.Validate(); err != nil {
			return err
		}
		if level.StandardDays <= 0 || level.ExpressDays <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("serviceLevels",
				fmt.Errorf("delivery days for %s must be positive", level.Zone))
		}
		if level.ExpressDays > level.StandardDays {
			return errs.NewValueIsInvalidErrorWithCause("serviceLevels",
				fmt.Errorf("express days exceed standard days for %s", level.Zone))
		}
		p.serviceLevels[level.Zone] = level
	}

	return nil
}

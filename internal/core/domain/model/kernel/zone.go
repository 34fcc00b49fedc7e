package kernel

import (
	"fmt"

	"routing/internal/pkg/errs"
)

// Zone represents a coarse geographic bucket used for pricing and
// performance segmentation. Carrier rate tables and historical metrics are
// keyed by the destination zone of a shipment.
//
// Zone is a value object that validates itself and provides string
// representations for persistence and display.
type Zone int

const (
	// ZoneUnknown represents an invalid or undefined zone.
	// This value (0) helps catch uninitialized Zone values.
	ZoneUnknown Zone = iota

	// ZoneLocal covers deliveries within the same city or pincode cluster.
	ZoneLocal

	// ZoneZonal covers deliveries within the same postal region.
	ZoneZonal

	// ZoneMetro covers deliveries between major metro areas.
	ZoneMetro

	// ZoneRestOfCountry covers everything that is neither local, zonal nor metro-to-metro.
	ZoneRestOfCountry
)

// pincodeLength is the number of digits in a valid postal pincode.
const pincodeLength = 6

// metroPrefixes are the leading pincode digits of the supported metro areas.
func metroPrefixes() map[string]struct{} {
	return map[string]struct{}{
		"110": {}, // Delhi
		"400": {}, // Mumbai
		"500": {}, // Hyderabad
		"560": {}, // Bengaluru
		"600": {}, // Chennai
		"700": {}, // Kolkata
	}
}

// getZoneStrings returns a map of Zone values to their string representations.
func getZoneStrings() map[Zone]string {
	return map[Zone]string{
		ZoneUnknown:       "Unknown",
		ZoneLocal:         "Local",
		ZoneZonal:         "Zonal",
		ZoneMetro:         "Metro",
		ZoneRestOfCountry: "RestOfCountry",
	}
}

// getValidZoneStrings returns a map of only valid Zone values.
func getValidZoneStrings() map[Zone]string {
	//nolint:exhaustive // ZoneUnknown is intentionally excluded as it's invalid
	return map[Zone]string{
		ZoneLocal:         "Local",
		ZoneZonal:         "Zonal",
		ZoneMetro:         "Metro",
		ZoneRestOfCountry: "RestOfCountry",
	}
}

// Validate checks if the Zone value is valid.
// Valid zones are: Local, Zonal, Metro, RestOfCountry.
func (z Zone) Validate() error {
	if _, ok := getValidZoneStrings()[z]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("zone is invalid", fmt.Errorf("%d is not a valid zone", z))
	}
	return nil
}

// String returns the human-readable name of the zone.
// This method implements the fmt.Stringer interface and is safe
// to call on any Zone value, including invalid ones.
func (z Zone) String() string {
	if str, ok := getZoneStrings()[z]; ok {
		return str
	}
	return "Unknown"
}

// IsMetro reports whether the zone qualifies for carrier metro discounts.
func (z Zone) IsMetro() bool {
	return z == ZoneMetro
}

// ClassifyZone derives the pricing/performance zone for a shipment from its
// origin and destination pincodes. The classification is deterministic:
//
//   - same 3-digit pincode prefix       -> Local
//   - both pincodes in metro areas      -> Metro
//   - same leading digit (same region)  -> Zonal
//   - anything else                     -> RestOfCountry
//
// Both pincodes must be exactly six digits; malformed input fails with a
// value-is-invalid error before any classification is attempted.
func ClassifyZone(originPincode, destinationPincode string) (Zone, error) {
	if err := validatePincode("originPincode", originPincode); err != nil {
		return ZoneUnknown, err
	}
	if err := validatePincode("destinationPincode", destinationPincode); err != nil {
		return ZoneUnknown, err
	}

	if originPincode[:3] == destinationPincode[:3] {
		return ZoneLocal, nil
	}

	metros := metroPrefixes()
	_, originMetro := metros[originPincode[:3]]
	_, destMetro := metros[destinationPincode[:3]]
	if originMetro && destMetro {
		return ZoneMetro, nil
	}

	if originPincode[0] == destinationPincode[0] {
		return ZoneZonal, nil
	}

	return ZoneRestOfCountry, nil
}

func validatePincode(paramName, pincode string) error {
	if pincode == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	if len(pincode) != pincodeLength {
		return errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("%q is not a %d-digit pincode", pincode, pincodeLength))
	}
	for _, r := range pincode {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause(paramName,
				fmt.Errorf("%q contains a non-digit character", pincode))
		}
	}
	return nil
}

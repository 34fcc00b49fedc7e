package carrier

import (
	"time"

	"routing/internal/core/domain/model/kernel"
)

// Fallback priors used when no history exists for a (carrier, zone) pair.
// They are deliberately conservative: a carrier without history scores as
// mediocre, not as perfect or hopeless.
const (
	DefaultReliability     = 75.0
	DefaultNDRRate         = 10.0
	DefaultRTORate         = 15.0
	DefaultAvgDeliveryDays = 5.0
)

// Performance holds derived historical metrics for one carrier in one zone.
// It is a point-in-time snapshot computed from the shipment event log; it is
// never the source of truth and is safe to cache with a TTL.
//
// DefaultsUsed is the defaults-used warning signal: when true, every metric
// is a fallback prior rather than an observation, and callers should discount
// confidence accordingly.
type Performance struct {
	CarrierID kernel.UUID
	Zone      kernel.Zone

	// Reliability is the delivered percentage of matching shipments, 0-100.
	Reliability float64

	// NDRRate is the percentage of shipments with a non-delivery report, 0-100.
	NDRRate float64

	// RTORate is the percentage of shipments returned to origin, 0-100.
	RTORate float64

	// AvgDeliveryDays is the mean delivery time over the delivered subset only.
	AvgDeliveryDays float64

	// SampleCount is the number of shipments the metrics were computed from.
	SampleCount int

	// LatestRecordAt is the creation time of the newest matching shipment.
	// Zero when DefaultsUsed is true.
	LatestRecordAt time.Time

	// DefaultsUsed flags that fallback priors were substituted for history.
	DefaultsUsed bool
}

// DefaultPerformance returns the documented fallback priors for a
// (carrier, zone) pair with no matching history, flagged so callers can
// discount confidence.
func DefaultPerformance(carrierID kernel.UUID, zone kernel.Zone) Performance {
	return Performance{
		CarrierID:       carrierID,
		Zone:            zone,
		Reliability:     DefaultReliability,
		NDRRate:         DefaultNDRRate,
		RTORate:         DefaultRTORate,
		AvgDeliveryDays: DefaultAvgDeliveryDays,
		DefaultsUsed:    true,
	}
}

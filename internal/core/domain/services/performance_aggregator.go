package services

import (
	"time"

	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/shipment"
)

// DefaultPerformanceWindow is the lookback applied when the caller does not
// pick one.
const DefaultPerformanceWindow = 90 * 24 * time.Hour

// PerformanceAggregator is a domain service that derives per-carrier,
// per-zone metrics from the shipment event log. Metrics are always
// recomputed from records, never updated incrementally, so the log stays the
// single source of truth.
//
// Business rules:
//   - Only shipments of the requested carrier, destination zone and window count
//   - Reliability, NDR rate and RTO rate are percentages over all matches
//   - Average delivery days covers the delivered subset only
//   - Zero matches yields the documented fallback priors, flagged as defaults
type PerformanceAggregator struct{}

// NewPerformanceAggregator creates a new PerformanceAggregator instance.
func NewPerformanceAggregator() PerformanceAggregator {
	return PerformanceAggregator{}
}

// Aggregate computes the performance snapshot for one (carrier, zone) pair
// over the window ending at asOf.
//
// Records outside the carrier, zone or window are skipped rather than
// rejected, so callers may pass a broader record set.
func (a PerformanceAggregator) Aggregate(
	carrierID kernel.UUID,
	zone kernel.Zone,
	window time.Duration,
	asOf time.Time,
	records []*shipment.Record,
) carrier.Performance {
	if window <= 0 {
		window = DefaultPerformanceWindow
	}
	cutoff := asOf.Add(-window)

	var (
		total        int
		delivered    int
		ndr          int
		rto          int
		deliveryDays float64
		latest       time.Time
	)

	for _, record := range records {
		if record == nil || record.Validate() != nil {
			continue
		}
		if !record.CarrierID().IsEqual(carrierID) || record.DestinationZone() != zone {
			continue
		}
		if record.CreatedAt().Before(cutoff) || record.CreatedAt().After(asOf) {
			continue
		}

		total++
		if record.CreatedAt().After(latest) {
			latest = record.CreatedAt()
		}
		if record.NDRFlag() {
			ndr++
		}
		if record.RTOFlag() {
			rto++
		}
		if days, ok := record.DeliveryDays(); ok {
			delivered++
			deliveryDays += days
		}
	}

	if total == 0 {
		return carrier.DefaultPerformance(carrierID, zone)
	}

	avgDays := carrier.DefaultAvgDeliveryDays
	if delivered > 0 {
		avgDays = deliveryDays / float64(delivered)
	}

	return carrier.Performance{
		CarrierID:       carrierID,
		Zone:            zone,
		Reliability:     percentage(delivered, total),
		NDRRate:         percentage(ndr, total),
		RTORate:         percentage(rto, total),
		AvgDeliveryDays: avgDays,
		SampleCount:     total,
		LatestRecordAt:  latest,
	}
}

func percentage(part, total int) float64 {
	return float64(part) / float64(total) * 100
}

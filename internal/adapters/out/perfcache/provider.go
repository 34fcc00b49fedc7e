// Package perfcache supplies carrier performance snapshots: an aggregating
// provider that derives them from the shipment log, and a TTL cache that
// bounds how often the derivation runs. The clock is injectable so TTL
// behavior is testable without sleeping.
package perfcache

import (
	"context"
	"time"

	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/services"
	"routing/internal/core/ports"
)

// AggregatingProvider computes performance snapshots on demand from the
// shipment event log. It is stateless; pair it with Cache to bound load.
type AggregatingProvider struct {
	shipments  ports.ShipmentRepository
	aggregator services.PerformanceAggregator
	window     time.Duration
	now        func() time.Time
}

// NewAggregatingProvider creates a provider reading from the given shipment
// repository. A non-positive window falls back to the default lookback; a
// nil now falls back to time.Now.
func NewAggregatingProvider(
	shipments ports.ShipmentRepository,
	window time.Duration,
	now func() time.Time,
) *AggregatingProvider {
	if window <= 0 {
		window = services.DefaultPerformanceWindow
	}
	if now == nil {
		now = time.Now
	}
	return &AggregatingProvider{
		shipments:  shipments,
		aggregator: services.NewPerformanceAggregator(),
		window:     window,
		now:        now,
	}
}

// Performance derives the snapshot for one (carrier, zone) pair from the
// stored shipment records.
func (p *AggregatingProvider) Performance(
	ctx context.Context,
	carrierID kernel.UUID,
	zone kernel.Zone,
) (carrier.Performance, error) {
	asOf := p.now()
	records, err := p.shipments.GetByCarrierAndZone(ctx, carrierID, zone, asOf.Add(-p.window), asOf)
	if err != nil {
		return carrier.Performance{}, err
	}

	return p.aggregator.Aggregate(carrierID, zone, p.window, asOf, records), nil
}

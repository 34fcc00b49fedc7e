package ports

import (
	"context"
	"time"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for the append-only
// shipment event log. Records are immutable once added, so there is no
// update operation.
type ShipmentRepository interface {
	// Add appends a new shipment record to the log.
	Add(ctx context.Context, record *shipment.Record) error

	// GetByCarrierAndZone retrieves the records for one carrier and
	// destination zone created within [from, to], ordered oldest first.
	GetByCarrierAndZone(
		ctx context.Context,
		carrierID kernel.UUID,
		zone kernel.Zone,
		from, to time.Time,
	) ([]*shipment.Record, error)

	// GetByCompany retrieves all records booked by one shipping company
	// created within [from, to], ordered oldest first.
	GetByCompany(ctx context.Context, companyID kernel.UUID, from, to time.Time) ([]*shipment.Record, error)
}

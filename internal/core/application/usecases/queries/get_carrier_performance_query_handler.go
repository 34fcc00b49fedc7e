package queries

import (
	"context"
	"time"

	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/shipment"
	"routing/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCarrierPerformanceQueryHandler reads the shipment log and derives the
// performance snapshot for one (carrier, zone) pair. The log is the single
// source of truth; metrics are recomputed on every call, never stored.
type GetCarrierPerformanceQueryHandler struct {
	db         *gorm.DB
	aggregator services.PerformanceAggregator
	now        func() time.Time
}

// NewGetCarrierPerformanceQueryHandler creates a handler for performance queries.
// A nil now falls back to time.Now.
func NewGetCarrierPerformanceQueryHandler(db *gorm.DB, now func() time.Time) GetCarrierPerformanceQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GetCarrierPerformanceQueryHandler{
		db:         db,
		aggregator: services.NewPerformanceAggregator(),
		now:        now,
	}
}

// Handle executes the query: loads the matching window of the shipment log
// and aggregates it. A carrier with no history in the zone yields the
// documented fallback priors flagged as defaults.
func (h GetCarrierPerformanceQueryHandler) Handle(
	ctx context.Context,
	query GetCarrierPerformanceQuery,
) (carrier.Performance, error) {
	if err := query.Validate(); err != nil {
		return carrier.Performance{}, err
	}

	window := query.Window()
	if window <= 0 {
		window = services.DefaultPerformanceWindow
	}
	asOf := h.now()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			company_id,
			carrier_id,
			origin_zone,
			destination_zone,
			weight_kg,
			cost_amount,
			status,
			ndr_flag,
			rto_flag,
			rto_reason,
			created_at,
			delivered_at
		FROM shipments
		WHERE carrier_id = ?
		  AND destination_zone = ?
		  AND created_at BETWEEN ? AND ?
		ORDER BY created_at
	`, query.CarrierID().Bytes(), int(query.Zone()), asOf.Add(-window), asOf).Rows()
	if err != nil {
		return carrier.Performance{}, err
	}
	defer rows.Close()

	records := make([]*shipment.Record, 0)

	for rows.Next() {
		var id, orderID, companyID, carrierID uuid.UUID
		var originZone, destinationZone int
		var weightKg, costAmount float64
		var status, rtoReason string
		var ndrFlag, rtoFlag bool
		var createdAt time.Time
		var deliveredAt *time.Time

		err = rows.Scan(
			&id,
			&orderID,
			&companyID,
			&carrierID,
			&originZone,
			&destinationZone,
			&weightKg,
			&costAmount,
			&status,
			&ndrFlag,
			&rtoFlag,
			&rtoReason,
			&createdAt,
			&deliveredAt,
		)
		if err != nil {
			return carrier.Performance{}, err
		}

		params, mapErr := restoreParams(
			id, orderID, companyID, carrierID,
			originZone, destinationZone,
			weightKg, costAmount,
			status, ndrFlag, rtoFlag, rtoReason,
			createdAt, deliveredAt,
		)
		if mapErr != nil {
			return carrier.Performance{}, mapErr
		}
		records = append(records, shipment.RestoreRecord(params))
	}

	if err = rows.Err(); err != nil {
		return carrier.Performance{}, err
	}

	return h.aggregator.Aggregate(query.CarrierID(), query.Zone(), window, asOf, records), nil
}

func restoreParams(
	id, orderID, companyID, carrierID uuid.UUID,
	originZone, destinationZone int,
	weightKg, costAmount float64,
	status string, ndrFlag, rtoFlag bool, rtoReason string,
	createdAt time.Time, deliveredAt *time.Time,
) (shipment.RecordParams, error) {
	recordID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return shipment.RecordParams{}, err
	}
	recordOrderID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return shipment.RecordParams{}, err
	}
	recordCompanyID, err := kernel.UUIDFromBytes(companyID[:])
	if err != nil {
		return shipment.RecordParams{}, err
	}
	recordCarrierID, err := kernel.UUIDFromBytes(carrierID[:])
	if err != nil {
		return shipment.RecordParams{}, err
	}

	return shipment.RecordParams{
		ID:              recordID,
		OrderID:         recordOrderID,
		CompanyID:       recordCompanyID,
		CarrierID:       recordCarrierID,
		OriginZone:      kernel.Zone(originZone),
		DestinationZone: kernel.Zone(destinationZone),
		WeightKg:        weightKg,
		CostAmount:      costAmount,
		Status:          shipment.Status(status),
		NDRFlag:         ndrFlag,
		RTOFlag:         rtoFlag,
		RTOReason:       rtoReason,
		CreatedAt:       createdAt,
		DeliveredAt:     deliveredAt,
	}, nil
}

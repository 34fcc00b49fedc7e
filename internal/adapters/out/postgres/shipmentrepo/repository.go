package shipmentrepo

import (
	"context"
	"time"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a new shipment record to the log.
func (r *GormShipmentRepository) Add(ctx context.Context, record *shipment.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// GetByCarrierAndZone retrieves one carrier's records for a destination zone
// created within [from, to], oldest first.
func (r *GormShipmentRepository) GetByCarrierAndZone(
	ctx context.Context,
	carrierID kernel.UUID,
	zone kernel.Zone,
	from, to time.Time,
) ([]*shipment.Record, error) {
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}
	if err := zone.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Where("carrier_id = ? AND destination_zone = ? AND created_at BETWEEN ? AND ?",
			carrierID.Bytes(), int(zone), from, to).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByCompany retrieves all of one company's records created within
// [from, to], oldest first.
func (r *GormShipmentRepository) GetByCompany(
	ctx context.Context,
	companyID kernel.UUID,
	from, to time.Time,
) ([]*shipment.Record, error) {
	if err := companyID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND created_at BETWEEN ? AND ?", companyID.Bytes(), from, to).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []ShipmentDTO) ([]*shipment.Record, error) {
	records := make([]*shipment.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

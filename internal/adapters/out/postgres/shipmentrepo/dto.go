// Package shipmentrepo provides data transfer objects and mapping functions
// for the append-only shipment event log.
package shipmentrepo

import (
	"time"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for shipment records.
// Rows are insert-only; the composite indexes serve the two range queries
// the aggregation and insight layers run.
type ShipmentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	CompanyID       uuid.UUID `gorm:"type:uuid;index:idx_shipments_company_created"`
	CarrierID       uuid.UUID `gorm:"type:uuid;index:idx_shipments_carrier_zone_created"`
	OriginZone      int
	DestinationZone int `gorm:"index:idx_shipments_carrier_zone_created"`
	WeightKg        float64
	CostAmount      float64
	Status          string
	NDRFlag         bool
	RTOFlag         bool
	RTOReason       string
	CreatedAt       time.Time  `gorm:"index:idx_shipments_carrier_zone_created;index:idx_shipments_company_created"`
	DeliveredAt     *time.Time
}

// TableName specifies the database table name for shipment records.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment record to its database representation.
func fromDomain(record *shipment.Record) ShipmentDTO {
	return ShipmentDTO{
		ID:              record.ID().Bytes(),
		OrderID:         record.OrderID().Bytes(),
		CompanyID:       record.CompanyID().Bytes(),
		CarrierID:       record.CarrierID().Bytes(),
		OriginZone:      int(record.OriginZone()),
		DestinationZone: int(record.DestinationZone()),
		WeightKg:        record.WeightKg(),
		CostAmount:      record.CostAmount(),
		Status:          record.Status().String(),
		NDRFlag:         record.NDRFlag(),
		RTOFlag:         record.RTOFlag(),
		RTOReason:       record.RTOReason(),
		CreatedAt:       record.CreatedAt(),
		DeliveredAt:     record.DeliveredAt(),
	}
}

// toDomain converts a database DTO to a shipment record using RestoreRecord.
func toDomain(dto ShipmentDTO) (*shipment.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	return shipment.RestoreRecord(shipment.RecordParams{
		ID:              id,
		OrderID:         orderID,
		CompanyID:       companyID,
		CarrierID:       carrierID,
		OriginZone:      kernel.Zone(dto.OriginZone),
		DestinationZone: kernel.Zone(dto.DestinationZone),
		WeightKg:        dto.WeightKg,
		CostAmount:      dto.CostAmount,
		Status:          shipment.Status(dto.Status),
		NDRFlag:         dto.NDRFlag,
		RTOFlag:         dto.RTOFlag,
		RTOReason:       dto.RTOReason,
		CreatedAt:       dto.CreatedAt,
		DeliveredAt:     dto.DeliveredAt,
	}), nil
}

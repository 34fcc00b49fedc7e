// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate with optimistic, version-gated writes.
package orderrepo

import (
	"time"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The concurrency version column is the optimistic write guard; the status
// history is stored as a jsonb document since it is only ever read back whole.
type OrderDTO struct {
	ID                 uuid.UUID            `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID            `gorm:"type:uuid;index"`
	Status             string               `gorm:"index"`
	ConcurrencyVersion int64                `gorm:"not null"`
	CarrierID          *uuid.UUID           `gorm:"type:uuid"`
	ActiveShipmentID   *uuid.UUID           `gorm:"type:uuid"`
	StatusHistory      []order.HistoryEntry `gorm:"serializer:json;type:jsonb"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		CompanyID:          aggregate.CompanyID().Bytes(),
		Status:             aggregate.Status().String(),
		ConcurrencyVersion: aggregate.ConcurrencyVersion(),
		CarrierID:          optionalUUID(aggregate.CarrierID()),
		ActiveShipmentID:   optionalUUID(aggregate.ActiveShipmentID()),
		StatusHistory:      aggregate.StatusHistory(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := optionalKernelUUID(dto.CarrierID)
	if err != nil {
		return nil, err
	}

	activeShipmentID, err := optionalKernelUUID(dto.ActiveShipmentID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                 id,
		CompanyID:          companyID,
		Status:             order.Status(dto.Status),
		ConcurrencyVersion: dto.ConcurrencyVersion,
		CarrierID:          carrierID,
		ActiveShipmentID:   activeShipmentID,
		StatusHistory:      dto.StatusHistory,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
	}), nil
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

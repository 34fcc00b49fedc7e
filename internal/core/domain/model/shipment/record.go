package shipment

import (
	"errors"
	"fmt"
	"time"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a Record instance was not
// created through the NewRecord or RestoreRecord factory methods.
var ErrRecordIsNotConstructed = errors.New("ShipmentRecord must be created via NewRecord constructor")

// RecordParams carries the inputs for NewRecord. Records have enough fields
// that positional arguments become error-prone.
//
// Zone classification is derived from the pincode pair, not a single
// pincode, so a booking records the same lane zone on both ends. The two
// fields stay separate for sources that do zone each end independently.
type RecordParams struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	CompanyID       kernel.UUID
	CarrierID       kernel.UUID
	OriginZone      kernel.Zone
	DestinationZone kernel.Zone
	WeightKg        float64
	CostAmount      float64
	Status          Status
	NDRFlag         bool
	RTOFlag         bool
	RTOReason       string
	CreatedAt       time.Time
	DeliveredAt     *time.Time
}

// Record is one entry in the append-only shipment event log. Once written it
// is never mutated; performance metrics and insights are always recomputed
// from the log instead of being updated in place.
//
// Record follows these invariants:
//   - All identifiers must be valid and the weight positive
//   - DeliveredAt is set if and only if the status is Delivered
//   - An RTO reason requires the RTO flag
//   - Can only be created through NewRecord or RestoreRecord
type Record struct {
	id              kernel.UUID
	orderID         kernel.UUID
	companyID       kernel.UUID
	carrierID       kernel.UUID
	originZone      kernel.Zone
	destinationZone kernel.Zone
	weightKg        float64
	costAmount      float64
	status          Status
	ndrFlag         bool
	rtoFlag         bool
	rtoReason       string
	createdAt       time.Time
	deliveredAt     *time.Time
	isConstructed   bool
}

// NewRecord creates a validated shipment Record. This is the only way to
// create a valid Record from new data.
func NewRecord(params RecordParams) (*Record, error) {
	record := &Record{isConstructed: true}

	if err := errors.Join(
		record.setID(params.ID),
		record.setOrderID(params.OrderID),
		record.setCompanyID(params.CompanyID),
		record.setCarrierID(params.CarrierID),
		record.setZones(params.OriginZone, params.DestinationZone),
		record.setWeightKg(params.WeightKg),
		record.setCostAmount(params.CostAmount),
		record.setStatus(params.Status),
		record.setFlags(params.NDRFlag, params.RTOFlag, params.RTOReason),
		record.setTimestamps(params.CreatedAt, params.DeliveredAt, params.Status),
	); err != nil {
		return nil, err
	}

	return record, nil
}

// RestoreRecord reconstructs a Record from persistence without revalidating
// cross-field invariants. Use only when loading trusted stored data.
func RestoreRecord(params RecordParams) *Record {
	return &Record{
		id:              params.ID,
		orderID:         params.OrderID,
		companyID:       params.CompanyID,
		carrierID:       params.CarrierID,
		originZone:      params.OriginZone,
		destinationZone: params.DestinationZone,
		weightKg:        params.WeightKg,
		costAmount:      params.CostAmount,
		status:          params.Status,
		ndrFlag:         params.NDRFlag,
		rtoFlag:         params.RTOFlag,
		rtoReason:       params.RTOReason,
		createdAt:       params.CreatedAt,
		deliveredAt:     params.DeliveredAt,
		isConstructed:   true,
	}
}

// Validate ensures the Record was created via a factory method.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// OrderID returns the order this shipment belongs to.
func (r *Record) OrderID() kernel.UUID {
	return r.orderID
}

// CompanyID returns the shipping company that booked the shipment.
func (r *Record) CompanyID() kernel.UUID {
	return r.companyID
}

// CarrierID returns the carrier that moved the shipment.
func (r *Record) CarrierID() kernel.UUID {
	return r.carrierID
}

// OriginZone returns the pickup zone classification.
func (r *Record) OriginZone() kernel.Zone {
	return r.originZone
}

// DestinationZone returns the delivery zone classification.
func (r *Record) DestinationZone() kernel.Zone {
	return r.destinationZone
}

// WeightKg returns the booked actual weight.
func (r *Record) WeightKg() float64 {
	return r.weightKg
}

// CostAmount returns the charged shipping cost.
func (r *Record) CostAmount() float64 {
	return r.costAmount
}

// Status returns the shipment outcome.
func (r *Record) Status() Status {
	return r.status
}

// NDRFlag reports whether a non-delivery report was raised.
func (r *Record) NDRFlag() bool {
	return r.ndrFlag
}

// RTOFlag reports whether the shipment was returned to origin.
func (r *Record) RTOFlag() bool {
	return r.rtoFlag
}

// RTOReason returns the recorded return reason, empty when RTOFlag is false.
func (r *Record) RTOReason() string {
	return r.rtoReason
}

// CreatedAt returns when the shipment was booked.
func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

// DeliveredAt returns the delivery time, nil unless the status is Delivered.
func (r *Record) DeliveredAt() *time.Time {
	return r.deliveredAt
}

// DeliveryDays returns the elapsed days between booking and delivery.
// The second return is false for undelivered shipments.
func (r *Record) DeliveryDays() (float64, bool) {
	if r.deliveredAt == nil {
		return 0, false
	}
	return r.deliveredAt.Sub(r.createdAt).Hours() / 24, true
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return fmt.Errorf("orderID: %w", err)
	}
	r.orderID = orderID
	return nil
}

func (r *Record) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return fmt.Errorf("companyID: %w", err)
	}
	r.companyID = companyID
	return nil
}

func (r *Record) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return fmt.Errorf("carrierID: %w", err)
	}
	r.carrierID = carrierID
	return nil
}

func (r *Record) setZones(origin, destination kernel.Zone) error {
	if err := origin.Validate(); err != nil {
		return fmt.Errorf("originZone: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return fmt.Errorf("destinationZone: %w", err)
	}
	r.originZone = origin
	r.destinationZone = destination
	return nil
}

func (r *Record) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%v is not greater than 0", weightKg))
	}
	r.weightKg = weightKg
	return nil
}

func (r *Record) setCostAmount(costAmount float64) error {
	if costAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("costAmount",
			fmt.Errorf("%v is negative", costAmount))
	}
	r.costAmount = costAmount
	return nil
}

func (r *Record) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Record) setFlags(ndrFlag, rtoFlag bool, rtoReason string) error {
	if rtoReason != "" && !rtoFlag {
		return errs.NewValueIsInvalidErrorWithCause("rtoReason",
			errors.New("reason given without rto flag"))
	}
	r.ndrFlag = ndrFlag
	r.rtoFlag = rtoFlag
	r.rtoReason = rtoReason
	return nil
}

func (r *Record) setTimestamps(createdAt time.Time, deliveredAt *time.Time, status Status) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}

	if status == StatusDelivered {
		if deliveredAt == nil {
			return errs.NewValueIsRequiredError("deliveredAt")
		}
		if deliveredAt.Before(createdAt) {
			return errs.NewValueIsInvalidErrorWithCause("deliveredAt",
				errors.New("delivery precedes creation"))
		}
	} else if deliveredAt != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveredAt",
			fmt.Errorf("set on %s shipment", status))
	}

	r.createdAt = createdAt
	r.deliveredAt = deliveredAt
	return nil
}

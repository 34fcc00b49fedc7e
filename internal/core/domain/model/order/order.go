package order

import (
	"errors"
	"time"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrShipmentAlreadyActive indicates an attempt to attach a second
	// shipment while one is still active.
	ErrShipmentAlreadyActive = errors.New("order already has an active shipment")
)

// RestoreOrderParams carries the stored state for RestoreOrder.
type RestoreOrderParams struct {
	ID                 kernel.UUID
	CompanyID          kernel.UUID
	Status             Status
	ConcurrencyVersion int64
	CarrierID          *kernel.UUID
	ActiveShipmentID   *kernel.UUID
	StatusHistory      []HistoryEntry
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Order is the aggregate root for one customer order moving through the
// fulfillment lifecycle. Every mutation advances the concurrency version by
// exactly one; repositories use the version they loaded as the write guard,
// so two concurrent mutations of the same stored state cannot both commit.
//
// Order follows these invariants:
//   - Status changes strictly along the lifecycle graph
//   - Holds at most one active shipment, only while carrier-assigned or later
//   - Status history is append-only and bounded by the history cap
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// companyID is the shipping company that owns the order
	companyID kernel.UUID

	// status is the current lifecycle state
	status Status

	// concurrencyVersion is the optimistic write guard, incremented per mutation
	concurrencyVersion int64

	// carrierID is the assigned carrier, nil until routing completes
	carrierID *kernel.UUID

	// activeShipmentID is the in-flight shipment, nil outside transit
	activeShipmentID *kernel.UUID

	// statusHistory records lifecycle events, oldest first, bounded by historyCap
	statusHistory []HistoryEntry

	// historyCap bounds statusHistory, 0 means DefaultHistoryCap
	historyCap int

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in the Created state. This is the only way to
// create a valid Order from new data.
func NewOrder(id, companyID kernel.UUID, createdAt time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := companyID.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Order{
		id:                 id,
		companyID:          companyID,
		status:             StatusCreated,
		concurrencyVersion: 1,
		statusHistory: []HistoryEntry{
			{Status: StatusCreated, Timestamp: createdAt},
		},
		historyCap:    DefaultHistoryCap,
		createdAt:     createdAt,
		updatedAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence without replaying its
// lifecycle. Use only when loading trusted stored data.
func RestoreOrder(params RestoreOrderParams) *Order {
	return &Order{
		id:                 params.ID,
		companyID:          params.CompanyID,
		status:             params.Status,
		concurrencyVersion: params.ConcurrencyVersion,
		carrierID:          params.CarrierID,
		activeShipmentID:   params.ActiveShipmentID,
		statusHistory:      params.StatusHistory,
		historyCap:         DefaultHistoryCap,
		createdAt:          params.CreatedAt,
		updatedAt:          params.UpdatedAt,
		isConstructed:      true,
	}
}

// Validate ensures the Order was created via a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CompanyID returns the owning shipping company.
func (o *Order) CompanyID() kernel.UUID {
	return o.companyID
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// ConcurrencyVersion returns the optimistic write guard value.
func (o *Order) ConcurrencyVersion() int64 {
	return o.concurrencyVersion
}

// CarrierID returns the assigned carrier, nil before routing.
func (o *Order) CarrierID() *kernel.UUID {
	return o.carrierID
}

// ActiveShipmentID returns the in-flight shipment, nil when none is active.
func (o *Order) ActiveShipmentID() *kernel.UUID {
	return o.activeShipmentID
}

// StatusHistory returns a copy of the recorded lifecycle events, oldest first.
func (o *Order) StatusHistory() []HistoryEntry {
	history := make([]HistoryEntry, len(o.statusHistory))
	copy(history, o.statusHistory)
	return history
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order to the target status if the lifecycle graph
// allows it, records the event, and advances the concurrency version.
//
// Reaching a terminal status releases the active shipment.
//
// Returns an InvalidTransitionError (wrapping ErrInvalidTransition) when the
// graph forbids the move.
func (o *Order) TransitionTo(target Status, at time.Time, actor, note string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(target) {
		return NewInvalidTransitionError(o.status, target)
	}

	o.status = target
	if target.IsTerminal() {
		o.activeShipmentID = nil
	}
	o.recordMutation(HistoryEntry{Status: target, Timestamp: at, Actor: actor, Note: note})
	return nil
}

// AssignCarrier routes the order to a carrier: it moves a Confirmed order to
// CarrierAssigned, pins the carrier and marks the shipment as the active one.
//
// Returns ErrShipmentAlreadyActive if a shipment is still in flight.
func (o *Order) AssignCarrier(carrierID, shipmentID kernel.UUID, at time.Time, actor string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := carrierID.Validate(); err != nil {
		return err
	}
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	if o.activeShipmentID != nil {
		return ErrShipmentAlreadyActive
	}
	if !o.status.CanTransitionTo(StatusCarrierAssigned) {
		return NewInvalidTransitionError(o.status, StatusCarrierAssigned)
	}

	o.status = StatusCarrierAssigned
	o.carrierID = &carrierID
	o.activeShipmentID = &shipmentID
	o.recordMutation(HistoryEntry{Status: StatusCarrierAssigned, Timestamp: at, Actor: actor})
	return nil
}

func (o *Order) recordMutation(entry HistoryEntry) {
	limit := o.historyCap
	if limit <= 0 {
		limit = DefaultHistoryCap
	}
	o.statusHistory = appendCapped(o.statusHistory, entry, limit)
	o.concurrencyVersion++
	o.updatedAt = entry.Timestamp
}

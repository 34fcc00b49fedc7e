package order

import (
	"errors"
	"fmt"

	"routing/internal/pkg/errs"
)

// Status represents the current state of an order in its lifecycle.
type Status string

const (
	StatusUnknown         Status = ""
	StatusCreated         Status = "CREATED"
	StatusConfirmed       Status = "CONFIRMED"
	StatusCarrierAssigned Status = "CARRIER_ASSIGNED"
	StatusInTransit       Status = "IN_TRANSIT"
	StatusDelivered       Status = "DELIVERED"
	StatusNDRRaised       Status = "NDR_RAISED"
	StatusRTOInitiated    Status = "RTO_INITIATED"
	StatusRTOCompleted    Status = "RTO_COMPLETED"
	StatusCancelled       Status = "CANCELLED"
)

// ErrInvalidTransition is the sentinel wrapped by every InvalidTransitionError.
var ErrInvalidTransition = errors.New("order status transition is not allowed")

// InvalidTransitionError reports a transition the lifecycle graph forbids.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order status transition is not allowed: from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transitions is the complete lifecycle graph. An order moves strictly along
// these edges; a status absent from the map is terminal.
var transitions = map[Status][]Status{
	StatusCreated:         {StatusConfirmed, StatusCancelled},
	StatusConfirmed:       {StatusCarrierAssigned, StatusCancelled},
	StatusCarrierAssigned: {StatusInTransit, StatusCancelled},
	StatusInTransit:       {StatusDelivered, StatusNDRRaised, StatusCancelled},
	StatusNDRRaised:       {StatusInTransit, StatusRTOInitiated},
	StatusRTOInitiated:    {StatusRTOCompleted},
}

var validStatuses = map[Status]bool{
	StatusCreated:         true,
	StatusConfirmed:       true,
	StatusCarrierAssigned: true,
	StatusInTransit:       true,
	StatusDelivered:       true,
	StatusNDRRaised:       true,
	StatusRTOInitiated:    true,
	StatusRTOCompleted:    true,
	StatusCancelled:       true,
}

// Validate checks that the status is one of the known lifecycle states.
func (s Status) Validate() error {
	if !validStatuses[s] {
		return errs.NewValueIsInvalidError("order status")
	}
	return nil
}

// CanTransitionTo reports whether the lifecycle graph allows moving from s
// to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return validStatuses[s] && len(transitions[s]) == 0
}

func (s Status) String() string {
	return string(s)
}

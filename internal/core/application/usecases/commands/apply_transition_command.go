package commands

import (
	"errors"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/order"
	"routing/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand represents a request to move an order along its
// lifecycle graph.
//
// ExpectedVersion is optional: when set, the transition fails immediately if
// the stored version differs, instead of applying on top of someone else's
// change. When unset, the handler retries transparently on write conflicts.
type ApplyTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	target          order.Status
	actor           string
	note            string
	expectedVersion *int64

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates a command to transition an order.
// The target must be a known lifecycle status; graph reachability is checked
// by the aggregate at apply time against the freshly loaded state.
func NewApplyTransitionCommand(
	orderID kernel.UUID,
	target order.Status,
	actor, note string,
	expectedVersion *int64,
) (ApplyTransitionCommand, error) {
	cmd := ApplyTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}

	cmd.actor = actor
	cmd.note = note
	cmd.expectedVersion = expectedVersion
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c ApplyTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested lifecycle status.
func (c ApplyTransitionCommand) Target() order.Status {
	return c.target
}

// Actor returns who requested the transition.
func (c ApplyTransitionCommand) Actor() string {
	return c.actor
}

// Note returns the free-form annotation for the history entry.
func (c ApplyTransitionCommand) Note() string {
	return c.note
}

// ExpectedVersion returns the fail-fast version guard, nil when unset.
func (c ApplyTransitionCommand) ExpectedVersion() *int64 {
	return c.expectedVersion
}

func (c *ApplyTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyTransitionCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

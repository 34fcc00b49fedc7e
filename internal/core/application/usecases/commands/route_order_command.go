package commands

import (
	"errors"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/routing"
	"routing/internal/pkg/guard"
)

var ErrRouteOrderCommandIsNotConstructed = errors.New(
	"RouteOrderCommand must be created via NewRouteOrderCommand constructor",
)

// RouteOrderCommand represents a request to pick a carrier for a confirmed
// order and book its shipment.
type RouteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	request routing.Request

	guard guard.ConstructorGuard
}

// NewRouteOrderCommand creates a routing command for an order. The routing
// request must itself be constructed via routing.NewRequest.
func NewRouteOrderCommand(orderID kernel.UUID, request routing.Request) (RouteOrderCommand, error) {
	cmd := RouteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequest(request),
	); err != nil {
		return RouteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RouteOrderCommand) Validate() error {
	return c.guard.Validate(ErrRouteOrderCommandIsNotConstructed)
}

// OrderID returns the order to route.
func (c RouteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Request returns the routing request parameters.
func (c RouteOrderCommand) Request() routing.Request {
	return c.request
}

func (c *RouteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RouteOrderCommand) setRequest(request routing.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	c.request = request
	return nil
}

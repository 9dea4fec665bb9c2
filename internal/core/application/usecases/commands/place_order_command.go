package commands

import (
	"errors"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a completed checkout for a commissioned track.
// Carries the platform order identifier, both parties, the creative brief, and
// the addon names the customer selected. Addon prices are resolved from the
// producer's settings at handling time, never trusted from the client.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.OrderID
	producerID     kernel.UserID
	customerID     kernel.UserID
	spec           order.CommissionSpec
	selectedAddons []string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to register a new commission order.
func NewPlaceOrderCommand(
	orderID kernel.OrderID,
	producerID kernel.UserID,
	customerID kernel.UserID,
	spec order.CommissionSpec,
	selectedAddons []string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProducerID(producerID),
		cmd.setCustomerID(customerID),
		cmd.setSpec(spec),
	); err != nil {
		return PlaceOrderCommand{}, err
	}
	cmd.selectedAddons = selectedAddons

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the platform order identifier.
func (c PlaceOrderCommand) OrderID() kernel.OrderID { return c.orderID }

// ProducerID returns the producer the commission targets.
func (c PlaceOrderCommand) ProducerID() kernel.UserID { return c.producerID }

// CustomerID returns the commissioning customer.
func (c PlaceOrderCommand) CustomerID() kernel.UserID { return c.customerID }

// Spec returns the creative brief.
func (c PlaceOrderCommand) Spec() order.CommissionSpec { return c.spec }

// SelectedAddons returns the addon names chosen at checkout.
func (c PlaceOrderCommand) SelectedAddons() []string { return c.selectedAddons }

func (c *PlaceOrderCommand) setOrderID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *PlaceOrderCommand) setProducerID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.producerID = id
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *PlaceOrderCommand) setSpec(spec order.CommissionSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	c.spec = spec
	return nil
}

package commands

import (
	"errors"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/guard"
)

var ErrConfirmFinalPaymentCommandIsNotConstructed = errors.New(
	"ConfirmFinalPaymentCommand must be created via NewConfirmFinalPaymentCommand constructor",
)

// ConfirmFinalPaymentCommand represents a payment hook reporting that the
// balance order has been paid. Keyed by the original commission order.
type ConfirmFinalPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

// NewConfirmFinalPaymentCommand creates a command to record the balance payment.
func NewConfirmFinalPaymentCommand(orderID kernel.OrderID) (ConfirmFinalPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmFinalPaymentCommand{}, err
	}

	return ConfirmFinalPaymentCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmFinalPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmFinalPaymentCommandIsNotConstructed)
}

// OrderID returns the original commission order identifier.
func (c ConfirmFinalPaymentCommand) OrderID() kernel.OrderID { return c.orderID }

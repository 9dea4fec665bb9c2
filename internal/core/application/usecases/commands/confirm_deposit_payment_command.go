package commands

import (
	"errors"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/guard"
)

var ErrConfirmDepositPaymentCommandIsNotConstructed = errors.New(
	"ConfirmDepositPaymentCommand must be created via NewConfirmDepositPaymentCommand constructor",
)

// ConfirmDepositPaymentCommand represents a payment hook from the platform
// reporting that the deposit order has been paid. The hook may fire more than
// once for the same payment.
type ConfirmDepositPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

// NewConfirmDepositPaymentCommand creates a command to record the deposit payment.
func NewConfirmDepositPaymentCommand(orderID kernel.OrderID) (ConfirmDepositPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmDepositPaymentCommand{}, err
	}

	return ConfirmDepositPaymentCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDepositPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDepositPaymentCommandIsNotConstructed)
}

// OrderID returns the paid platform order identifier.
func (c ConfirmDepositPaymentCommand) OrderID() kernel.OrderID { return c.orderID }

package commands

import (
	"errors"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/guard"
)

var ErrConfirmReceiptCommandIsNotConstructed = errors.New(
	"ConfirmReceiptCommand must be created via NewConfirmReceiptCommand constructor",
)

// ConfirmReceiptCommand represents the customer confirming they received the
// final delivery.
type ConfirmReceiptCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	actorID kernel.UserID

	guard guard.ConstructorGuard
}

// NewConfirmReceiptCommand creates a command to confirm receipt.
func NewConfirmReceiptCommand(orderID kernel.OrderID, actorID kernel.UserID) (ConfirmReceiptCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return ConfirmReceiptCommand{}, err
	}

	return ConfirmReceiptCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmReceiptCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceiptCommandIsNotConstructed)
}

// OrderID returns the completed order.
func (c ConfirmReceiptCommand) OrderID() kernel.OrderID { return c.orderID }

// ActorID returns the user confirming receipt.
func (c ConfirmReceiptCommand) ActorID() kernel.UserID { return c.actorID }

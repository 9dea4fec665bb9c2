package commands

import (
	"errors"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/guard"
)

var ErrApproveDemoCommandIsNotConstructed = errors.New(
	"ApproveDemoCommand must be created via NewApproveDemoCommand constructor",
)

// ApproveDemoCommand represents the customer approving the submitted demo.
type ApproveDemoCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	actorID kernel.UserID

	guard guard.ConstructorGuard
}

// NewApproveDemoCommand creates a command to approve the demo.
func NewApproveDemoCommand(orderID kernel.OrderID, actorID kernel.UserID) (ApproveDemoCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return ApproveDemoCommand{}, err
	}

	return ApproveDemoCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveDemoCommand) Validate() error {
	return c.guard.Validate(ErrApproveDemoCommandIsNotConstructed)
}

// OrderID returns the order being approved.
func (c ApproveDemoCommand) OrderID() kernel.OrderID { return c.orderID }

// ActorID returns the user performing the approval.
func (c ApproveDemoCommand) ActorID() kernel.UserID { return c.actorID }

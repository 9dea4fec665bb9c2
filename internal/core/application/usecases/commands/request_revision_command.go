package commands

import (
	"errors"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/guard"
)

var ErrRequestRevisionCommandIsNotConstructed = errors.New(
	"RequestRevisionCommand must be created via NewRequestRevisionCommand constructor",
)

// RequestRevisionCommand represents the customer sending the demo back for
// rework. Feedback is optional free text relayed to the producer.
type RequestRevisionCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.OrderID
	actorID  kernel.UserID
	feedback string

	guard guard.ConstructorGuard
}

// NewRequestRevisionCommand creates a command to request a demo revision.
func NewRequestRevisionCommand(
	orderID kernel.OrderID,
	actorID kernel.UserID,
	feedback string,
) (RequestRevisionCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return RequestRevisionCommand{}, err
	}

	return RequestRevisionCommand{
		orderID:  orderID,
		actorID:  actorID,
		feedback: feedback,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestRevisionCommand) Validate() error {
	return c.guard.Validate(ErrRequestRevisionCommandIsNotConstructed)
}

// OrderID returns the order being sent back.
func (c RequestRevisionCommand) OrderID() kernel.OrderID { return c.orderID }

// ActorID returns the user requesting the revision.
func (c RequestRevisionCommand) ActorID() kernel.UserID { return c.actorID }

// Feedback returns the customer's revision notes, possibly empty.
func (c RequestRevisionCommand) Feedback() string { return c.feedback }

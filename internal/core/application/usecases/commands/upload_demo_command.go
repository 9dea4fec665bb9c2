package commands

import (
	"errors"
	"io"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/errs"
	"trackorder/internal/pkg/guard"
)

var ErrUploadDemoCommandIsNotConstructed = errors.New(
	"UploadDemoCommand must be created via NewUploadDemoCommand constructor",
)

// UploadDemoCommand represents a producer submitting a demo for customer
// review. Carries the upload stream; the file is only stored once the order
// accepts the transition.
type UploadDemoCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.OrderID
	actorID  kernel.UserID
	fileName string
	content  io.Reader

	guard guard.ConstructorGuard
}

// NewUploadDemoCommand creates a command to submit a demo.
func NewUploadDemoCommand(
	orderID kernel.OrderID,
	actorID kernel.UserID,
	fileName string,
	content io.Reader,
) (UploadDemoCommand, error) {
	cmd := UploadDemoCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setFile(fileName, content),
	); err != nil {
		return UploadDemoCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UploadDemoCommand) Validate() error {
	return c.guard.Validate(ErrUploadDemoCommandIsNotConstructed)
}

// OrderID returns the order the demo belongs to.
func (c UploadDemoCommand) OrderID() kernel.OrderID { return c.orderID }

// ActorID returns the user performing the upload.
func (c UploadDemoCommand) ActorID() kernel.UserID { return c.actorID }

// FileName returns the uploaded file's original name.
func (c UploadDemoCommand) FileName() string { return c.fileName }

// Content returns the upload stream.
func (c UploadDemoCommand) Content() io.Reader { return c.content }

func (c *UploadDemoCommand) setOrderID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *UploadDemoCommand) setActorID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}

func (c *UploadDemoCommand) setFile(fileName string, content io.Reader) error {
	if fileName == "" {
		return errs.NewValueIsRequiredError("fileName")
	}
	if content == nil {
		return errs.NewValueIsRequiredError("file content")
	}

	c.fileName = fileName
	c.content = content
	return nil
}

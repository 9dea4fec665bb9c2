package commands

import (
	"errors"
	"io"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/errs"
	"trackorder/internal/pkg/guard"
)

var ErrUploadFinalFilesCommandIsNotConstructed = errors.New(
	"UploadFinalFilesCommand must be created via NewUploadFinalFilesCommand constructor",
)

// FileUpload is one file in a multi-file upload request.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// UploadFinalFilesCommand represents the producer delivering the final files
// after the balance payment cleared.
type UploadFinalFilesCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	actorID kernel.UserID
	uploads []FileUpload

	guard guard.ConstructorGuard
}

// NewUploadFinalFilesCommand creates a command to deliver the final files.
func NewUploadFinalFilesCommand(
	orderID kernel.OrderID,
	actorID kernel.UserID,
	uploads []FileUpload,
) (UploadFinalFilesCommand, error) {
	cmd := UploadFinalFilesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setUploads(uploads),
	); err != nil {
		return UploadFinalFilesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UploadFinalFilesCommand) Validate() error {
	return c.guard.Validate(ErrUploadFinalFilesCommandIsNotConstructed)
}

// OrderID returns the order being delivered.
func (c UploadFinalFilesCommand) OrderID() kernel.OrderID { return c.orderID }

// ActorID returns the user performing the delivery.
func (c UploadFinalFilesCommand) ActorID() kernel.UserID { return c.actorID }

// Uploads returns the files to deliver.
func (c UploadFinalFilesCommand) Uploads() []FileUpload { return c.uploads }

func (c *UploadFinalFilesCommand) setOrderID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *UploadFinalFilesCommand) setActorID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}

func (c *UploadFinalFilesCommand) setUploads(uploads []FileUpload) error {
	if len(uploads) == 0 {
		return errs.NewValueIsRequiredError("files")
	}
	for _, u := range uploads {
		if u.Name == "" {
			return errs.NewValueIsRequiredError("fileName")
		}
		if u.Content == nil {
			return errs.NewValueIsRequiredError("file content")
		}
	}

	c.uploads = uploads
	return nil
}

package commands

import (
	"errors"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/errs"
	"trackorder/internal/pkg/guard"
)

var ErrUploadReferenceTracksCommandIsNotConstructed = errors.New(
	"UploadReferenceTracksCommand must be created via NewUploadReferenceTracksCommand constructor",
)

// UploadReferenceTracksCommand represents the customer attaching reference
// material to the commission: example tracks, sketches, or a video clip the
// track should score.
type UploadReferenceTracksCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	actorID kernel.UserID
	uploads []FileUpload

	guard guard.ConstructorGuard
}

// NewUploadReferenceTracksCommand creates a command to upload reference material.
func NewUploadReferenceTracksCommand(
	orderID kernel.OrderID,
	actorID kernel.UserID,
	uploads []FileUpload,
) (UploadReferenceTracksCommand, error) {
	cmd := UploadReferenceTracksCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setUploads(uploads),
	); err != nil {
		return UploadReferenceTracksCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UploadReferenceTracksCommand) Validate() error {
	return c.guard.Validate(ErrUploadReferenceTracksCommandIsNotConstructed)
}

// OrderID returns the order the material belongs to.
func (c UploadReferenceTracksCommand) OrderID() kernel.OrderID { return c.orderID }

// ActorID returns the user performing the upload.
func (c UploadReferenceTracksCommand) ActorID() kernel.UserID { return c.actorID }

// Uploads returns the files to store.
func (c UploadReferenceTracksCommand) Uploads() []FileUpload { return c.uploads }

func (c *UploadReferenceTracksCommand) setOrderID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *UploadReferenceTracksCommand) setActorID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}

func (c *UploadReferenceTracksCommand) setUploads(uploads []FileUpload) error {
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

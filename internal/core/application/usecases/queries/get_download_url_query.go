package queries

import (
	"errors"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/pkg/errs"
	"trackorder/internal/pkg/guard"
)

var ErrGetDownloadURLQueryIsNotConstructed = errors.New(
	"GetDownloadURLQuery must be created via NewGetDownloadURLQuery constructor",
)

// GetDownloadURLQuery requests a time-limited download link for one stored
// file: the demo, a delivered final file, or a piece of reference material.
// The actor's identity is re-checked against the stored order on every
// request; possession of a file identifier grants nothing.
type GetDownloadURLQuery struct {
	orderID kernel.OrderID
	kind    services.FileKind
	fileID  kernel.FileID
	actorID kernel.UserID

	guard guard.ConstructorGuard
}

// NewGetDownloadURLQuery creates a query for a file download link. An order
// holds at most one demo, so the file id is required only for the per-file
// kinds (final, reference) and ignored for the demo.
func NewGetDownloadURLQuery(
	orderID kernel.OrderID,
	kind services.FileKind,
	fileID kernel.FileID,
	actorID kernel.UserID,
) (GetDownloadURLQuery, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate(), validateKind(kind)); err != nil {
		return GetDownloadURLQuery{}, err
	}
	if kind != services.DemoFile {
		if err := fileID.Validate(); err != nil {
			return GetDownloadURLQuery{}, err
		}
	}

	return GetDownloadURLQuery{
		orderID: orderID,
		kind:    kind,
		fileID:  fileID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func validateKind(kind services.FileKind) error {
	switch kind {
	case services.DemoFile, services.FinalFile, services.ReferenceFile:
		return nil
	default:
		return errs.NewValueIsInvalidError("kind")
	}
}

// Validate ensures the query was created through the constructor.
func (q GetDownloadURLQuery) Validate() error {
	return q.guard.Validate(ErrGetDownloadURLQueryIsNotConstructed)
}

// OrderID returns the order the file belongs to.
func (q GetDownloadURLQuery) OrderID() kernel.OrderID { return q.orderID }

// Kind returns the requested file category.
func (q GetDownloadURLQuery) Kind() services.FileKind { return q.kind }

// FileID returns the requested file. Zero for the demo kind.
func (q GetDownloadURLQuery) FileID() kernel.FileID { return q.fileID }

// ActorID returns the requesting user.
func (q GetDownloadURLQuery) ActorID() kernel.UserID { return q.actorID }

// GetDownloadURLQueryResponse carries the expiring link.
type GetDownloadURLQueryResponse struct {
	URL       string
	FileName  string
	ExpiresIn int64
}

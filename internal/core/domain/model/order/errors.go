package order

import "errors"

var (
	// ErrTrackOrderIsNotConstructed is returned when a TrackOrder instance was
	// not created through NewTrackOrder or RestoreTrackOrder.
	ErrTrackOrderIsNotConstructed = errors.New("TrackOrder must be created via NewTrackOrder or RestoreTrackOrder")

	// ErrNotAuthorized is returned when the acting user is not the party the
	// requested transition is reserved for. The aggregate never changes state
	// when this is returned.
	ErrNotAuthorized = errors.New("actor is not authorized for this order operation")

	// ErrInvalidState is returned when a transition does not apply to the
	// order's current status or an unpaid payment gate blocks it. A caller
	// seeing this after a concurrent request lost a race should reload and
	// retry manually; the engine never retries on its own.
	ErrInvalidState = errors.New("order is not in a valid state for this operation")

	// ErrRevisionLimitExceeded is returned when a revision is requested beyond
	// the producer's configured maximum.
	ErrRevisionLimitExceeded = errors.New("maximum number of revisions reached")

	// ErrNoFinalFiles is returned when a final delivery carries no stored files.
	ErrNoFinalFiles = errors.New("final delivery requires at least one stored file")
)

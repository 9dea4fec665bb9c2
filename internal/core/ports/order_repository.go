package ports

import (
	"context"
	"time"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for track order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate. Adding an order that already
	// exists is a no-op, so replayed checkout hooks do not fail.
	Add(ctx context.Context, aggregate *order.TrackOrder) error

	// Update persists changes to an existing order aggregate unconditionally.
	Update(ctx context.Context, aggregate *order.TrackOrder) error

	// UpdateInStatus persists changes only if the stored row is still in the
	// given status. Returns order.ErrInvalidState when a concurrent request
	// already moved the order on, so exactly one of two racing transitions
	// wins.
	UpdateInStatus(ctx context.Context, aggregate *order.TrackOrder, expected order.Status) error

	// UpdateIfDepositUnpaid persists changes only if the stored row still has
	// the deposit unpaid, and reports whether a row changed. Of two racing
	// deposit hooks exactly one sees a match; the loser is a silent no-op.
	UpdateIfDepositUnpaid(ctx context.Context, aggregate *order.TrackOrder) (bool, error)

	// Get retrieves an order aggregate by its identifier.
	// Returns errs.ErrObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.OrderID) (*order.TrackOrder, error)

	// GetAllInStatusOlderThan retrieves orders that entered the given status
	// before the cutoff. Used by the payment reminder job.
	GetAllInStatusOlderThan(ctx context.Context, status order.Status, cutoff time.Time) ([]*order.TrackOrder, error)
}

package orderrepo

import (
	"context"
	"errors"
	"time"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.OrderID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order. Conflicting inserts are silently skipped so a
// replayed checkout hook does not fail the request.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.TrackOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order unconditionally.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.TrackOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&TrackOrderDTO{}).
		Where("order_id = ?", dto.OrderID).
		Select("*").Omit("order_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateInStatus saves the order only if the stored row is still in the
// expected status. The matched row stays locked until the surrounding
// transaction ends, so of two racing transitions exactly one sees a match;
// the other gets order.ErrInvalidState.
func (r *GormOrderRepository) UpdateInStatus(
	ctx context.Context,
	aggregate *order.TrackOrder,
	expected order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&TrackOrderDTO{}).
		Where("order_id = ? AND status = ?", dto.OrderID, expected.String()).
		Select("*").Omit("order_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.ErrInvalidState
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfDepositUnpaid saves the order only if the stored row still has
// deposit_paid=false, and reports whether a row changed. A replayed or
// concurrent deposit hook matches zero rows and is absorbed without error.
func (r *GormOrderRepository) UpdateIfDepositUnpaid(
	ctx context.Context,
	aggregate *order.TrackOrder,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&TrackOrderDTO{}).
		Where("order_id = ? AND deposit_paid = ?", dto.OrderID, false).
		Select("*").Omit("order_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return true, nil
}

// Get retrieves an order by its platform identifier.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.TrackOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TrackOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatusOlderThan retrieves orders that entered the given status
// before the cutoff. The filter is on the status-change timestamp, not the
// order's age: a week-old commission approved an hour ago is not stale.
func (r *GormOrderRepository) GetAllInStatusOlderThan(
	ctx context.Context,
	status order.Status,
	cutoff time.Time,
) ([]*order.TrackOrder, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackOrderDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND status_changed_at < ?", status.String(), cutoff).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.TrackOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

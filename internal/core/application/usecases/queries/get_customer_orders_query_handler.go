package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler lists the orders a customer commissioned.
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer order listings.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted newest first.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanOrderSummaries(ctx, h.db, `
		SELECT
			order_id,
			producer_id,
			customer_id,
			status,
			service_type,
			total_cents,
			deposit_paid,
			final_paid,
			revision_count,
			created_at
		FROM track_orders
		WHERE customer_id = ?
		ORDER BY created_at DESC
	`, query.CustomerID().Int64())
}

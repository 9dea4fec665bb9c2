package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetProducerOrdersQueryHandler lists the orders assigned to one producer.
type GetProducerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetProducerOrdersQueryHandler creates a handler for producer order listings.
func NewGetProducerOrdersQueryHandler(db *gorm.DB) GetProducerOrdersQueryHandler {
	return GetProducerOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted newest first.
func (h GetProducerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetProducerOrdersQuery,
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
		WHERE producer_id = ?
		ORDER BY created_at DESC
	`, query.ProducerID().Int64())
}

func scanOrderSummaries(ctx context.Context, db *gorm.DB, sql string, arg any) ([]OrderSummaryResponse, error) {
	rows, err := db.WithContext(ctx).Raw(sql, arg).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummaryResponse, 0)
	for rows.Next() {
		var s OrderSummaryResponse
		if err = rows.Scan(
			&s.OrderID,
			&s.ProducerID,
			&s.CustomerID,
			&s.Status,
			&s.ServiceType,
			&s.TotalCents,
			&s.DepositPaid,
			&s.FinalPaid,
			&s.RevisionCount,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/pkg/errs"

	"gorm.io/gorm"
)

// JSON column shapes shared by the read side. They mirror what the order
// repository writes.
type (
	addonJSON struct {
		Name       string `json:"name"`
		PriceCents int64  `json:"price_cents"`
	}

	finalFileJSON struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		URL  string `json:"url"`
	}
)

// GetOrderDetailsQueryHandler reads one order row and maps it to the party
// view.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderDetailsQueryHandler creates a handler for order detail queries.
func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

// Handle executes the query.
// Returns errs.ErrObjectNotFound for unknown orders and order.ErrNotAuthorized
// when the actor is neither the producer nor the customer.
func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (GetOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			producer_id,
			customer_id,
			status,
			service_type,
			genres,
			bpm,
			mood,
			track_length,
			instructions,
			addons,
			total_cents,
			deposit_paid,
			final_paid,
			demo_url,
			demo_approved,
			revision_count,
			final_files,
			final_payment_order_id,
			message_thread_id,
			created_at
		FROM track_orders
		WHERE order_id = ?
	`, query.OrderID().Int64()).Row()

	var resp GetOrderDetailsQueryResponse
	var genresRaw, addonsRaw, filesRaw []byte
	var finalPaymentOrderID, messageThreadID sql.NullInt64
	var createdAt time.Time

	err := row.Scan(
		&resp.OrderID,
		&resp.ProducerID,
		&resp.CustomerID,
		&resp.Status,
		&resp.ServiceType,
		&genresRaw,
		&resp.BPM,
		&resp.Mood,
		&resp.TrackLength,
		&resp.Instructions,
		&addonsRaw,
		&resp.TotalCents,
		&resp.DepositPaid,
		&resp.FinalPaid,
		&resp.DemoURL,
		&resp.DemoApproved,
		&resp.RevisionCount,
		&filesRaw,
		&finalPaymentOrderID,
		&messageThreadID,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderDetailsQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	actor := query.ActorID().Int64()
	if actor != resp.ProducerID && actor != resp.CustomerID {
		return GetOrderDetailsQueryResponse{}, order.ErrNotAuthorized
	}

	if err = unmarshalColumn(genresRaw, &resp.Genres); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	var addons []addonJSON
	if err = unmarshalColumn(addonsRaw, &addons); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	for _, a := range addons {
		resp.Addons = append(resp.Addons, OrderAddonResponse{Name: a.Name, PriceCents: a.PriceCents})
	}

	var files []finalFileJSON
	if err = unmarshalColumn(filesRaw, &files); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	for _, f := range files {
		resp.FinalFiles = append(resp.FinalFiles, OrderFileResponse{ID: f.ID, Name: f.Name})
	}

	resp.DepositCents = depositCents(resp.TotalCents)
	resp.BalanceCents = resp.TotalCents - resp.DepositCents
	resp.CreatedAt = createdAt
	if finalPaymentOrderID.Valid {
		resp.FinalPaymentOrderID = &finalPaymentOrderID.Int64
	}
	if messageThreadID.Valid {
		resp.MessageThreadID = &messageThreadID.Int64
	}

	return resp, nil
}

func unmarshalColumn(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode stored column: %w", err)
	}
	return nil
}

func depositCents(totalCents int64) int64 {
	return (totalCents*services.DepositPercent + 50) / 100
}

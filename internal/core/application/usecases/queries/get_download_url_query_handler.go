package queries

import (
	"context"
	"database/sql"
	"errors"
	"path"
	"time"

	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/core/ports"
	"trackorder/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDownloadURLQueryHandler issues expiring download links for stored files.
// The not-found and not-authorized cases are deliberately distinct: an unknown
// order or file is not found, while a real file requested by the wrong user is
// not authorized.
type GetDownloadURLQueryHandler struct {
	db    *gorm.DB
	files ports.FileStore
	ttl   time.Duration
}

// NewGetDownloadURLQueryHandler creates a handler for download link queries.
func NewGetDownloadURLQueryHandler(db *gorm.DB, files ports.FileStore, ttl time.Duration) GetDownloadURLQueryHandler {
	return GetDownloadURLQueryHandler{db: db, files: files, ttl: ttl}
}

// Handle executes the query.
func (h GetDownloadURLQueryHandler) Handle(
	ctx context.Context,
	query GetDownloadURLQuery,
) (GetDownloadURLQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDownloadURLQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT producer_id, customer_id, demo_url, final_files, reference_files
		FROM track_orders
		WHERE order_id = ?
	`, query.OrderID().Int64()).Row()

	var producerID, customerID int64
	var demoURL string
	var finalRaw, referenceRaw []byte
	err := row.Scan(&producerID, &customerID, &demoURL, &finalRaw, &referenceRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDownloadURLQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return GetDownloadURLQueryResponse{}, err
	}

	actor := query.ActorID().Int64()
	if actor != producerID && actor != customerID {
		return GetDownloadURLQueryResponse{}, order.ErrNotAuthorized
	}

	switch query.Kind() {
	case services.DemoFile:
		return h.presignDemo(ctx, demoURL, query)
	case services.ReferenceFile:
		return h.presignFromList(ctx, referenceRaw, query)
	default:
		return h.presignFromList(ctx, finalRaw, query)
	}
}

func (h GetDownloadURLQueryHandler) presignDemo(
	ctx context.Context,
	demoURL string,
	query GetDownloadURLQuery,
) (GetDownloadURLQueryResponse, error) {
	if demoURL == "" {
		return GetDownloadURLQueryResponse{}, errs.NewObjectNotFoundError("demo", query.OrderID().String())
	}

	key, err := h.files.KeyFromURL(demoURL)
	if err != nil {
		return GetDownloadURLQueryResponse{}, err
	}

	url, err := h.files.PresignDownload(ctx, key, h.ttl)
	if err != nil {
		return GetDownloadURLQueryResponse{}, err
	}

	return GetDownloadURLQueryResponse{
		URL:       url,
		FileName:  path.Base(key),
		ExpiresIn: int64(h.ttl.Seconds()),
	}, nil
}

func (h GetDownloadURLQueryHandler) presignFromList(
	ctx context.Context,
	raw []byte,
	query GetDownloadURLQuery,
) (GetDownloadURLQueryResponse, error) {
	var files []finalFileJSON
	if err := unmarshalColumn(raw, &files); err != nil {
		return GetDownloadURLQueryResponse{}, err
	}

	for _, f := range files {
		if f.ID != query.FileID().String() {
			continue
		}

		key, err := h.files.KeyFromURL(f.URL)
		if err != nil {
			return GetDownloadURLQueryResponse{}, err
		}

		url, err := h.files.PresignDownload(ctx, key, h.ttl)
		if err != nil {
			return GetDownloadURLQueryResponse{}, err
		}

		return GetDownloadURLQueryResponse{
			URL:       url,
			FileName:  f.Name,
			ExpiresIn: int64(h.ttl.Seconds()),
		}, nil
	}

	return GetDownloadURLQueryResponse{}, errs.NewObjectNotFoundError("fileId", query.FileID().String())
}

// Package orderrepo implements persistence for track order aggregates.
// Handles the mapping between the domain aggregate and its relational
// representation, with list-valued fields stored as jsonb.
package orderrepo

import (
	"encoding/json"
	"time"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
)

// TrackOrderDTO is the database row for one commission order. The platform
// order id is the primary key; genres, addons, and final files live in jsonb
// columns.
type TrackOrderDTO struct {
	OrderID    int64  `gorm:"primaryKey;autoIncrement:false"`
	ProducerID int64  `gorm:"index"`
	CustomerID int64  `gorm:"index"`
	Status     string `gorm:"type:text;index"`

	ServiceType  string
	Genres       []byte `gorm:"type:jsonb"`
	BPM          int    `gorm:"column:bpm"`
	Mood         string
	TrackLength  string
	Instructions string
	Addons       []byte `gorm:"type:jsonb"`

	TotalCents  int64
	DepositPaid bool
	FinalPaid   bool

	DemoURL        string `gorm:"column:demo_url"`
	DemoApproved   bool
	RevisionCount  int
	FinalFiles     []byte `gorm:"type:jsonb"`
	ReferenceFiles []byte `gorm:"type:jsonb"`

	FinalPaymentOrderID *int64
	MessageThreadID     *int64

	CreatedAt       time.Time `gorm:"index"`
	StatusChangedAt time.Time `gorm:"index"`
	ReminderSentAt  *time.Time
}

// TableName overrides GORM's default naming to use "track_orders".
func (TrackOrderDTO) TableName() string {
	return "track_orders"
}

type addonJSON struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

type finalFileJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// fromDomain converts a track order aggregate to its database representation.
func fromDomain(aggregate *order.TrackOrder) (TrackOrderDTO, error) {
	spec := aggregate.Spec()

	genres, err := json.Marshal(spec.Genres)
	if err != nil {
		return TrackOrderDTO{}, err
	}

	addons := make([]addonJSON, 0, len(aggregate.Addons()))
	for _, a := range aggregate.Addons() {
		addons = append(addons, addonJSON{Name: a.Name, PriceCents: a.Price.Cents()})
	}
	addonsRaw, err := json.Marshal(addons)
	if err != nil {
		return TrackOrderDTO{}, err
	}

	files := make([]finalFileJSON, 0, len(aggregate.FinalFiles()))
	for _, f := range aggregate.FinalFiles() {
		files = append(files, finalFileJSON{ID: f.ID.String(), Name: f.Name, URL: f.URL})
	}
	filesRaw, err := json.Marshal(files)
	if err != nil {
		return TrackOrderDTO{}, err
	}

	refs := make([]finalFileJSON, 0, len(aggregate.ReferenceFiles()))
	for _, f := range aggregate.ReferenceFiles() {
		refs = append(refs, finalFileJSON{ID: f.ID.String(), Name: f.Name, URL: f.URL})
	}
	refsRaw, err := json.Marshal(refs)
	if err != nil {
		return TrackOrderDTO{}, err
	}

	var finalPaymentOrderID *int64
	if id := aggregate.FinalPaymentOrderID(); id != nil {
		raw := id.Int64()
		finalPaymentOrderID = &raw
	}

	return TrackOrderDTO{
		OrderID:             aggregate.ID().Int64(),
		ProducerID:          aggregate.ProducerID().Int64(),
		CustomerID:          aggregate.CustomerID().Int64(),
		Status:              aggregate.Status().String(),
		ServiceType:         spec.ServiceType,
		Genres:              genres,
		BPM:                 spec.BPM,
		Mood:                spec.Mood,
		TrackLength:         spec.TrackLength,
		Instructions:        spec.Instructions,
		Addons:              addonsRaw,
		TotalCents:          aggregate.Total().Cents(),
		DepositPaid:         aggregate.DepositPaid(),
		FinalPaid:           aggregate.FinalPaid(),
		DemoURL:             aggregate.DemoURL(),
		DemoApproved:        aggregate.DemoApproved(),
		RevisionCount:       aggregate.RevisionCount(),
		FinalFiles:          filesRaw,
		ReferenceFiles:      refsRaw,
		FinalPaymentOrderID: finalPaymentOrderID,
		MessageThreadID:     aggregate.MessageThreadID(),
		CreatedAt:           aggregate.CreatedAt(),
		StatusChangedAt:     aggregate.StatusChangedAt(),
		ReminderSentAt:      aggregate.ReminderSentAt(),
	}, nil
}

// toDomain reconstructs the aggregate from a database row.
func toDomain(dto TrackOrderDTO) (*order.TrackOrder, error) {
	orderID, err := kernel.NewOrderID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	producerID, err := kernel.NewUserID(dto.ProducerID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.NewUserID(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoneyFromCents(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	var genres []string
	if len(dto.Genres) > 0 {
		if err = json.Unmarshal(dto.Genres, &genres); err != nil {
			return nil, err
		}
	}

	var addonRows []addonJSON
	if len(dto.Addons) > 0 {
		if err = json.Unmarshal(dto.Addons, &addonRows); err != nil {
			return nil, err
		}
	}
	addons := make([]order.Addon, 0, len(addonRows))
	for _, a := range addonRows {
		price, priceErr := kernel.NewMoneyFromCents(a.PriceCents)
		if priceErr != nil {
			return nil, priceErr
		}
		addons = append(addons, order.Addon{Name: a.Name, Price: price})
	}

	var fileRows []finalFileJSON
	if len(dto.FinalFiles) > 0 {
		if err = json.Unmarshal(dto.FinalFiles, &fileRows); err != nil {
			return nil, err
		}
	}
	files := make([]order.FinalFile, 0, len(fileRows))
	for _, f := range fileRows {
		fileID, fileErr := kernel.FileIDFromString(f.ID)
		if fileErr != nil {
			return nil, fileErr
		}
		files = append(files, order.FinalFile{ID: fileID, Name: f.Name, URL: f.URL})
	}

	var refRows []finalFileJSON
	if len(dto.ReferenceFiles) > 0 {
		if err = json.Unmarshal(dto.ReferenceFiles, &refRows); err != nil {
			return nil, err
		}
	}
	refs := make([]order.ReferenceFile, 0, len(refRows))
	for _, f := range refRows {
		fileID, fileErr := kernel.FileIDFromString(f.ID)
		if fileErr != nil {
			return nil, fileErr
		}
		refs = append(refs, order.ReferenceFile{ID: fileID, Name: f.Name, URL: f.URL})
	}

	var finalPaymentOrderID *kernel.OrderID
	if dto.FinalPaymentOrderID != nil {
		id, idErr := kernel.NewOrderID(*dto.FinalPaymentOrderID)
		if idErr != nil {
			return nil, idErr
		}
		finalPaymentOrderID = &id
	}

	return order.RestoreTrackOrder(
		orderID,
		producerID,
		customerID,
		order.CommissionSpec{
			ServiceType:  dto.ServiceType,
			Genres:       genres,
			BPM:          dto.BPM,
			Mood:         dto.Mood,
			TrackLength:  dto.TrackLength,
			Instructions: dto.Instructions,
		},
		addons,
		total,
		status,
		dto.DepositPaid,
		dto.FinalPaid,
		dto.DemoURL,
		dto.DemoApproved,
		files,
		refs,
		dto.RevisionCount,
		finalPaymentOrderID,
		dto.MessageThreadID,
		dto.CreatedAt,
		dto.StatusChangedAt,
		dto.ReminderSentAt,
	)
}

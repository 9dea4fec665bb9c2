package queries

import (
	"errors"
	"time"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/guard"
)

var ErrGetProducerOrdersQueryIsNotConstructed = errors.New(
	"GetProducerOrdersQuery must be created via NewGetProducerOrdersQuery constructor",
)

// GetProducerOrdersQuery lists a producer's commission orders, newest first.
type GetProducerOrdersQuery struct {
	producerID kernel.UserID

	guard guard.ConstructorGuard
}

// NewGetProducerOrdersQuery creates a query for a producer's order list.
func NewGetProducerOrdersQuery(producerID kernel.UserID) (GetProducerOrdersQuery, error) {
	if err := producerID.Validate(); err != nil {
		return GetProducerOrdersQuery{}, err
	}

	return GetProducerOrdersQuery{
		producerID: producerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProducerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetProducerOrdersQueryIsNotConstructed)
}

// ProducerID returns the producer whose orders are listed.
func (q GetProducerOrdersQuery) ProducerID() kernel.UserID { return q.producerID }

// OrderSummaryResponse is one row in an order listing.
type OrderSummaryResponse struct {
	OrderID       int64
	ProducerID    int64
	CustomerID    int64
	Status        string
	ServiceType   string
	TotalCents    int64
	DepositPaid   bool
	FinalPaid     bool
	RevisionCount int
	CreatedAt     time.Time
}

// Package queries contains read-only operations over the order store.
// Query handlers read directly from the database with raw SQL and return
// plain response structs, bypassing the aggregate.
package queries

import (
	"errors"
	"time"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/guard"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery retrieves the full state of one order for one of its
// parties. Anyone else gets a not-authorized error, never order data.
type GetOrderDetailsQuery struct {
	orderID kernel.OrderID
	actorID kernel.UserID

	guard guard.ConstructorGuard
}

// NewGetOrderDetailsQuery creates a query for one order's details.
func NewGetOrderDetailsQuery(orderID kernel.OrderID, actorID kernel.UserID) (GetOrderDetailsQuery, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return GetOrderDetailsQuery{}, err
	}

	return GetOrderDetailsQuery{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderDetailsQuery) OrderID() kernel.OrderID { return q.orderID }

// ActorID returns the requesting user.
func (q GetOrderDetailsQuery) ActorID() kernel.UserID { return q.actorID }

// OrderFileResponse describes one delivered file.
type OrderFileResponse struct {
	ID   string
	Name string
}

// OrderAddonResponse describes one priced addon on the order.
type OrderAddonResponse struct {
	Name       string
	PriceCents int64
}

// GetOrderDetailsQueryResponse is the full order view for its parties.
type GetOrderDetailsQueryResponse struct {
	OrderID      int64
	ProducerID   int64
	CustomerID   int64
	Status       string
	ServiceType  string
	Genres       []string
	BPM          int
	Mood         string
	TrackLength  string
	Instructions string
	Addons       []OrderAddonResponse

	TotalCents   int64
	DepositCents int64
	BalanceCents int64
	DepositPaid  bool
	FinalPaid    bool

	DemoURL       string
	DemoApproved  bool
	RevisionCount int
	FinalFiles    []OrderFileResponse

	FinalPaymentOrderID *int64
	MessageThreadID     *int64
	CreatedAt           time.Time
}

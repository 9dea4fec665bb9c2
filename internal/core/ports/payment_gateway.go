package ports

import (
	"context"

	"trackorder/internal/core/domain/model/kernel"
)

// BalanceOrder describes the follow-up platform order that collects the
// remaining balance.
type BalanceOrder struct {
	ID kernel.OrderID

	// PaymentURL is the checkout link the customer pays through.
	PaymentURL string
}

// PaymentGateway is the contract to the e-commerce platform's order system.
// The platform, not this service, collects the money; the gateway only creates
// and completes platform payment orders.
type PaymentGateway interface {
	// CreateBalanceOrder creates the follow-up platform order that collects
	// the remaining balance after demo approval.
	CreateBalanceOrder(ctx context.Context, originalOrder kernel.OrderID, customer kernel.UserID, amount kernel.Money) (BalanceOrder, error)

	// CompleteOrder marks a platform payment order as complete. Called for
	// both payment orders when the customer confirms receipt.
	CompleteOrder(ctx context.Context, id kernel.OrderID) error
}

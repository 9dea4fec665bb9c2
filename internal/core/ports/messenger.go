package ports

import (
	"context"

	"trackorder/internal/core/domain/model/kernel"
)

// Messenger is the contract to the marketplace conversation system. All calls
// are best effort: the workflow never fails because a thread or message could
// not be created.
type Messenger interface {
	// CreateThread opens a conversation between the two parties for an order
	// and returns the platform thread identifier.
	CreateThread(ctx context.Context, orderID kernel.OrderID, producer, customer kernel.UserID, subject string) (int64, error)

	// PostMessage appends a message to an existing thread on behalf of a
	// user. A zero-value author posts as the system.
	PostMessage(ctx context.Context, threadID int64, author kernel.UserID, body string) error
}

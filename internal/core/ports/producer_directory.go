package ports

import (
	"context"

	"trackorder/internal/core/domain/model/kernel"
)

// ProducerDirectory is the contract to the platform's account system.
type ProducerDirectory interface {
	// IsProducer reports whether the user holds a producer (vendor) account.
	IsProducer(ctx context.Context, id kernel.UserID) (bool, error)

	// UserEmail resolves a user's notification address.
	UserEmail(ctx context.Context, id kernel.UserID) (string, error)
}

package ports

import (
	"context"

	"trackorder/internal/core/application/events"
)

// EventPublisher delivers workflow events to their subscribers. Publication
// happens after the owning transaction commits; subscriber failures are logged
// and never surface to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

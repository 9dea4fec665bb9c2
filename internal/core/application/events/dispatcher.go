package events

import (
	"context"
	"log/slog"
	"sync"
)

// Handler consumes one published event. Handlers run synchronously in
// publication order; an error is logged and does not stop other handlers.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Dispatcher is the in-process event bus. Subscribers are registered once at
// composition time; Publish fans each event out to every subscriber.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
	log      *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(log *slog.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Subscribe registers a handler for all subsequent events.
func (d *Dispatcher) Subscribe(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, h)
}

// Publish delivers the event to every subscriber. Handler errors are logged
// and swallowed: notifications are best effort and must never fail the
// workflow operation that produced the event.
func (d *Dispatcher) Publish(ctx context.Context, event Event) {
	d.mu.RLock()
	handlers := d.handlers
	d.mu.RUnlock()

	for _, h := range handlers {
		if err := h.Handle(ctx, event); err != nil {
			d.log.Warn("event handler failed",
				"event", event.EventName(),
				"error", err,
			)
		}
	}
}

package commands

import (
	"context"
	"fmt"
	"time"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/core/ports"
)

// UploadDemoCommandHandler stores a demo file and moves the order to
// awaiting_customer_approval.
//
// The storage key is computed before the upload so the aggregate transition,
// the upload, and the conditional update all happen inside one transaction;
// a rejected transition never leaves a stored file behind.
type UploadDemoCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     *services.FilePolicy
	files      ports.FileStore
	publisher  ports.EventPublisher
}

// NewUploadDemoCommandHandler creates a handler for demo uploads.
func NewUploadDemoCommandHandler(
	uowFactory OrderUoWFactory,
	policy *services.FilePolicy,
	files ports.FileStore,
	publisher ports.EventPublisher,
) UploadDemoCommandHandler {
	return UploadDemoCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		files:      files,
		publisher:  publisher,
	}
}

// Handle processes the demo upload.
// Only the order's producer may upload, the deposit must have cleared, and the
// order must be waiting for a demo. Returns order.ErrInvalidState when a
// concurrent submission won the race.
func (h *UploadDemoCommandHandler) Handle(ctx context.Context, cmd UploadDemoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.Check(services.DemoFile, cmd.FileName()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	key := demoKey(aggregate, cmd.FileName(), h.policy)
	if err = aggregate.SubmitDemo(cmd.ActorID(), h.files.URLFor(key)); err != nil {
		return err
	}

	if _, err = h.files.Store(ctx, key, h.policy.ContentType(cmd.FileName()), cmd.Content()); err != nil {
		return fmt.Errorf("store demo file: %w", err)
	}

	if err = repo.UpdateInStatus(ctx, aggregate, order.PendingDemoSubmission); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.DemoUploaded{
		OrderContext: events.OrderContext{
			OrderID:    aggregate.ID(),
			ProducerID: aggregate.ProducerID(),
			CustomerID: aggregate.CustomerID(),
			ThreadID:   aggregate.MessageThreadID(),
		},
		DemoURL: aggregate.DemoURL(),
	})

	return nil
}

func demoKey(aggregate *order.TrackOrder, fileName string, policy *services.FilePolicy) string {
	return fmt.Sprintf("orders/%s/demos/%d-%s",
		aggregate.ID(), time.Now().UTC().Unix(), policy.SanitizeName(fileName))
}

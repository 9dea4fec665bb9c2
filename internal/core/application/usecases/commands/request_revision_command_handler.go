package commands

import (
	"context"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/ports"
)

// RequestRevisionCommandHandler sends the order back to the producer for
// rework, counting the revision against the producer's configured limit.
type RequestRevisionCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewRequestRevisionCommandHandler creates a handler for revision requests.
func NewRequestRevisionCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) RequestRevisionCommandHandler {
	return RequestRevisionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the revision request.
// Returns order.ErrRevisionLimitExceeded when the producer's allowance is
// used up; the order then stays in awaiting_customer_approval.
func (h *RequestRevisionCommandHandler) Handle(ctx context.Context, cmd RequestRevisionCommand) error {
	if err := cmd.Validate(); err != nil {
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

	settings, err := uow.SettingsRepository().Get(ctx, aggregate.ProducerID())
	if err != nil {
		return err
	}

	if err = aggregate.RequestRevision(cmd.ActorID(), settings.MaxRevisions()); err != nil {
		return err
	}

	if err = repo.UpdateInStatus(ctx, aggregate, order.AwaitingCustomerApproval); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.RevisionRequested{
		OrderContext: events.OrderContext{
			OrderID:    aggregate.ID(),
			ProducerID: aggregate.ProducerID(),
			CustomerID: aggregate.CustomerID(),
			ThreadID:   aggregate.MessageThreadID(),
		},
		RevisionCount: aggregate.RevisionCount(),
		MaxRevisions:  settings.MaxRevisions(),
		Feedback:      cmd.Feedback(),
	})

	return nil
}

package commands

import (
	"context"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/ports"
)

// ConfirmFinalPaymentCommandHandler records the balance payment and moves the
// order to awaiting_final_delivery.
type ConfirmFinalPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewConfirmFinalPaymentCommandHandler creates a handler for balance payment confirmation.
func NewConfirmFinalPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) ConfirmFinalPaymentCommandHandler {
	return ConfirmFinalPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the balance payment hook.
func (h *ConfirmFinalPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmFinalPaymentCommand) error {
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

	if err = aggregate.ConfirmFinalPayment(); err != nil {
		return err
	}

	if err = repo.UpdateInStatus(ctx, aggregate, order.AwaitingFinalPayment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.FinalPaymentConfirmed{
		OrderContext: events.OrderContext{
			OrderID:    aggregate.ID(),
			ProducerID: aggregate.ProducerID(),
			CustomerID: aggregate.CustomerID(),
			ThreadID:   aggregate.MessageThreadID(),
		},
		Amount: aggregate.Balance(),
	})

	return nil
}

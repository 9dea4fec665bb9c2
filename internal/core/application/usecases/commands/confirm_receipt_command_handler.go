package commands

import (
	"context"
	"fmt"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/ports"
)

// ConfirmReceiptCommandHandler closes out the platform payment orders once the
// customer confirms the delivery arrived. The workflow status does not change;
// the order is already Completed.
type ConfirmReceiptCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	publisher  ports.EventPublisher
}

// NewConfirmReceiptCommandHandler creates a handler for receipt confirmation.
func NewConfirmReceiptCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.EventPublisher,
) ConfirmReceiptCommandHandler {
	return ConfirmReceiptCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		publisher:  publisher,
	}
}

// Handle processes the receipt confirmation.
// Marks both platform orders (deposit and balance) complete.
func (h *ConfirmReceiptCommandHandler) Handle(ctx context.Context, cmd ConfirmReceiptCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ConfirmReceipt(cmd.ActorID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.gateway.CompleteOrder(ctx, aggregate.ID()); err != nil {
		return fmt.Errorf("complete deposit order: %w", err)
	}
	if balanceOrder := aggregate.FinalPaymentOrderID(); balanceOrder != nil {
		if err = h.gateway.CompleteOrder(ctx, *balanceOrder); err != nil {
			return fmt.Errorf("complete balance order: %w", err)
		}
	}

	h.publisher.Publish(ctx, events.ReceiptConfirmed{
		OrderContext: events.OrderContext{
			OrderID:    aggregate.ID(),
			ProducerID: aggregate.ProducerID(),
			CustomerID: aggregate.CustomerID(),
			ThreadID:   aggregate.MessageThreadID(),
		},
	})

	return nil
}

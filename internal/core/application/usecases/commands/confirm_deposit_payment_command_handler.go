package commands

import (
	"context"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/ports"
)

// ConfirmDepositPaymentCommandHandler records the deposit payment on the
// order. The operation is idempotent: replayed payment hooks change nothing
// and publish no second notification.
type ConfirmDepositPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewConfirmDepositPaymentCommandHandler creates a handler for deposit confirmation.
func NewConfirmDepositPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) ConfirmDepositPaymentCommandHandler {
	return ConfirmDepositPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the deposit payment hook.
func (h *ConfirmDepositPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmDepositPaymentCommand) error {
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

	if !aggregate.ConfirmDeposit() {
		return nil
	}

	// The write is conditional on the stored row still being unpaid. Two
	// concurrent hooks both read deposit_paid=false; only the one whose
	// update matches publishes the notification.
	won, err := repo.UpdateIfDepositUnpaid(ctx, aggregate)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.DepositConfirmed{
		OrderContext: events.OrderContext{
			OrderID:    aggregate.ID(),
			ProducerID: aggregate.ProducerID(),
			CustomerID: aggregate.CustomerID(),
			ThreadID:   aggregate.MessageThreadID(),
		},
		Amount: aggregate.Deposit(),
	})

	return nil
}

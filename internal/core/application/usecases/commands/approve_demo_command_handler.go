package commands

import (
	"context"
	"fmt"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/ports"
)

// ApproveDemoCommandHandler records the customer's approval and creates the
// platform order that collects the remaining balance.
//
// The conditional status update runs before the gateway call and locks the
// order row, so two concurrent approvals produce exactly one balance order:
// the loser's update matches zero rows and the handler returns
// order.ErrInvalidState before ever reaching the gateway.
type ApproveDemoCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	publisher  ports.EventPublisher
}

// NewApproveDemoCommandHandler creates a handler for demo approval.
func NewApproveDemoCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.EventPublisher,
) ApproveDemoCommandHandler {
	return ApproveDemoCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		publisher:  publisher,
	}
}

// Handle processes the demo approval.
func (h *ApproveDemoCommandHandler) Handle(ctx context.Context, cmd ApproveDemoCommand) error {
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

	if err = aggregate.ApproveDemo(cmd.ActorID()); err != nil {
		return err
	}

	if err = repo.UpdateInStatus(ctx, aggregate, order.AwaitingCustomerApproval); err != nil {
		return err
	}

	balanceOrder, err := h.gateway.CreateBalanceOrder(
		ctx, aggregate.ID(), aggregate.CustomerID(), aggregate.Balance(),
	)
	if err != nil {
		return fmt.Errorf("create balance order: %w", err)
	}

	if err = aggregate.AttachFinalPaymentOrder(balanceOrder.ID); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.DemoApproved{
		OrderContext: events.OrderContext{
			OrderID:    aggregate.ID(),
			ProducerID: aggregate.ProducerID(),
			CustomerID: aggregate.CustomerID(),
			ThreadID:   aggregate.MessageThreadID(),
		},
		BalanceOrderID: balanceOrder.ID,
		Balance:        aggregate.Balance(),
		PaymentURL:     balanceOrder.PaymentURL,
	})

	return nil
}

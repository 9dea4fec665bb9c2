package commands

import (
	"context"
	"fmt"
	"log/slog"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/model/producer"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/core/ports"
	"trackorder/internal/pkg/errs"
)

// PlaceOrderCommandHandler creates the order record when checkout completes.
// Prices the commission from the producer's current settings, snapshots the
// result onto the order, and opens the conversation thread for the parties.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	pricing    *services.PricingService
	directory  ports.ProducerDirectory
	messenger  ports.Messenger
	publisher  ports.EventPublisher
	log        *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	pricing *services.PricingService,
	directory ports.ProducerDirectory,
	messenger ports.Messenger,
	publisher ports.EventPublisher,
	log *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		directory:  directory,
		messenger:  messenger,
		publisher:  publisher,
		log:        log,
	}
}

// Handle processes the order placement command.
// The order starts in pending_demo_submission with the deposit unpaid. Thread
// creation and event publication happen after commit and are best effort.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	isProducer, err := h.directory.IsProducer(ctx, cmd.ProducerID())
	if err != nil {
		return fmt.Errorf("resolve producer account: %w", err)
	}
	if !isProducer {
		return errs.NewObjectNotFoundError("producer", cmd.ProducerID().String())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	settings, err := uow.SettingsRepository().Get(ctx, cmd.ProducerID())
	if err != nil {
		return err
	}
	if !settings.AcceptingOrders() {
		return producer.ErrNotAcceptingOrders
	}

	addons, total, err := h.pricing.Quote(settings, cmd.SelectedAddons())
	if err != nil {
		return err
	}

	aggregate, err := order.NewTrackOrder(
		cmd.OrderID(), cmd.ProducerID(), cmd.CustomerID(), cmd.Spec(), addons, total,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	threadID := h.openThread(ctx, aggregate)

	h.publisher.Publish(ctx, events.OrderPlaced{
		OrderContext: events.OrderContext{
			OrderID:    aggregate.ID(),
			ProducerID: aggregate.ProducerID(),
			CustomerID: aggregate.CustomerID(),
			ThreadID:   threadID,
		},
		Total:   aggregate.Total(),
		Deposit: aggregate.Deposit(),
	})

	return nil
}

// openThread creates the conversation thread and records it on the order.
// Any failure is logged and leaves the order without a thread.
func (h *PlaceOrderCommandHandler) openThread(ctx context.Context, aggregate *order.TrackOrder) *int64 {
	subject := fmt.Sprintf("Custom track order #%s", aggregate.ID())
	threadID, err := h.messenger.CreateThread(
		ctx, aggregate.ID(), aggregate.ProducerID(), aggregate.CustomerID(), subject,
	)
	if err != nil {
		h.log.Warn("conversation thread creation failed",
			"orderId", aggregate.ID().String(), "error", err)
		return nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.log.Warn("thread attach failed", "orderId", aggregate.ID().String(), "error", err)
		return &threadID
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	stored, err := repo.Get(ctx, aggregate.ID())
	if err == nil {
		stored.AttachMessageThread(threadID)
		err = repo.Update(ctx, stored)
	}
	if err == nil {
		err = uow.Commit(ctx)
	}
	if err != nil {
		h.log.Warn("thread attach failed", "orderId", aggregate.ID().String(), "error", err)
	}

	return &threadID
}

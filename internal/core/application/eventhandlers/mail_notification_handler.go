// Package eventhandlers contains the notification subscribers wired to the
// event dispatcher. All notifications are best effort: a returned error is
// logged by the dispatcher and never affects the workflow operation.
package eventhandlers

import (
	"context"
	"fmt"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/ports"
)

// MailNotificationHandler emails the party who needs to act next at each
// workflow step.
type MailNotificationHandler struct {
	mailer    ports.Mailer
	directory ports.ProducerDirectory
}

// NewMailNotificationHandler creates the mail subscriber.
func NewMailNotificationHandler(mailer ports.Mailer, directory ports.ProducerDirectory) *MailNotificationHandler {
	return &MailNotificationHandler{mailer: mailer, directory: directory}
}

// Handle sends the notification for events that have one.
func (h *MailNotificationHandler) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.DepositConfirmed:
		return h.send(ctx, e.ProducerID,
			fmt.Sprintf("Deposit payment received for Order #%s", e.OrderID),
			fmt.Sprintf("The deposit payment for order #%s has been received. "+
				"You can now start working on the custom track. "+
				"Log in to your dashboard to see the order details.", e.OrderID))

	case events.DemoUploaded:
		return h.send(ctx, e.CustomerID,
			fmt.Sprintf("Demo ready for your review - Order #%s", e.OrderID),
			fmt.Sprintf("The producer has submitted a demo for your order #%s. "+
				"Please login to your account to review it and provide feedback or approval.", e.OrderID))

	case events.DemoApproved:
		return h.send(ctx, e.ProducerID,
			fmt.Sprintf("Demo approved for Order #%s", e.OrderID),
			fmt.Sprintf("The customer has approved your demo for order #%s. "+
				"Once they complete the final payment, you can upload the final files.", e.OrderID))

	case events.RevisionRequested:
		return h.send(ctx, e.ProducerID,
			fmt.Sprintf("Revision requested for Order #%s", e.OrderID),
			fmt.Sprintf("The customer has requested a revision for order #%s. "+
				"Please check your dashboard for their feedback.", e.OrderID))

	case events.FinalPaymentConfirmed:
		return h.send(ctx, e.ProducerID,
			fmt.Sprintf("Final payment received for Order #%s", e.OrderID),
			fmt.Sprintf("The final payment for order #%s has been received. "+
				"Please deliver the final track files to the customer.", e.OrderID))

	case events.FinalFilesDelivered:
		return h.send(ctx, e.CustomerID,
			fmt.Sprintf("Your custom track is ready - Order #%s", e.OrderID),
			fmt.Sprintf("The producer has delivered the final files for your order #%s. "+
				"Please login to your account to download the files.", e.OrderID))
	}

	return nil
}

func (h *MailNotificationHandler) send(ctx context.Context, to kernel.UserID, subject, body string) error {
	email, err := h.directory.UserEmail(ctx, to)
	if err != nil {
		return fmt.Errorf("resolve email for user %s: %w", to, err)
	}
	return h.mailer.Send(ctx, email, subject, body)
}

package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// reminderAge is how long an order may sit awaiting the balance payment before
// the customer is nudged.
const reminderAge = 24 * time.Hour

// PaymentReminderJob nudges customers whose demo was approved but who have not
// paid the remaining balance. Runs hourly; reminders go out by mail and, when
// the order has a thread, as a thread message. Both are best effort, and each
// order is reminded at most once.
type PaymentReminderJob struct {
	orders    ports.OrderRepository
	directory ports.ProducerDirectory
	mailer    ports.Mailer
	messenger ports.Messenger
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPaymentReminderJob creates the hourly balance-payment reminder job.
func NewPaymentReminderJob(
	orders ports.OrderRepository,
	directory ports.ProducerDirectory,
	mailer ports.Mailer,
	messenger ports.Messenger,
	logger *slog.Logger,
) *PaymentReminderJob {
	return &PaymentReminderJob{
		orders:    orders,
		directory: directory,
		mailer:    mailer,
		messenger: messenger,
		cron:      cron.New(),
		logger:    logger.With("component", "payment_reminder_job"),
	}
}

// Start begins the reminder job, running at the top of every hour.
func (j *PaymentReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Payment reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reminder job started (running hourly)")
	return nil
}

// Stop stops the reminder job.
func (j *PaymentReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment reminder job stopped")
}

func (j *PaymentReminderJob) run(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-reminderAge)
	stale, err := j.orders.GetAllInStatusOlderThan(ctx, order.AwaitingFinalPayment, cutoff)
	if err != nil {
		return err
	}

	for _, o := range stale {
		if o.ReminderSentAt() != nil {
			continue
		}
		if !j.remind(ctx, o) {
			continue
		}

		o.MarkReminderSent(time.Now().UTC())
		if err = j.orders.Update(ctx, o); err != nil {
			j.logger.WarnContext(ctx, "Could not record sent reminder",
				"orderId", o.ID().String(), "error", err)
		}
	}
	return nil
}

// remind sends one reminder pair and reports whether the mail went out.
// Failures are logged per order so one broken address never blocks the rest
// of the batch; an unmailed order stays unmarked and is retried next run.
func (j *PaymentReminderJob) remind(ctx context.Context, o *order.TrackOrder) bool {
	subject := fmt.Sprintf("Payment reminder for Order #%s", o.ID())
	body := fmt.Sprintf(
		"Your demo for Order #%s has been approved, but the remaining payment of %s is still outstanding. "+
			"Please complete the payment so the producer can deliver your final track.",
		o.ID(), o.Balance(),
	)

	mailed := true
	email, err := j.directory.UserEmail(ctx, o.CustomerID())
	if err != nil {
		j.logger.WarnContext(ctx, "Could not resolve customer email for reminder",
			"orderId", o.ID().String(), "error", err)
		mailed = false
	} else if err = j.mailer.Send(ctx, email, subject, body); err != nil {
		j.logger.WarnContext(ctx, "Could not send reminder mail",
			"orderId", o.ID().String(), "error", err)
		mailed = false
	}

	threadID := o.MessageThreadID()
	if threadID == nil {
		return mailed
	}
	message := fmt.Sprintf(
		"Friendly reminder: the remaining payment of %s for this order is still outstanding.",
		o.Balance(),
	)
	if err = j.messenger.PostMessage(ctx, *threadID, kernel.UserID{}, message); err != nil {
		j.logger.WarnContext(ctx, "Could not post reminder thread message",
			"orderId", o.ID().String(), "error", err)
	}

	return mailed
}

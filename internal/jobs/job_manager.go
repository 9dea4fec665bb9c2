package jobs

import (
	"fmt"
	"log/slog"

	"trackorder/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	paymentReminderJob *PaymentReminderJob
}

// NewJobManager creates a job manager with all required jobs wired up.
func NewJobManager(
	orders ports.OrderRepository,
	directory ports.ProducerDirectory,
	mailer ports.Mailer,
	messenger ports.Messenger,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		paymentReminderJob: NewPaymentReminderJob(orders, directory, mailer, messenger, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment reminder job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.paymentReminderJob.Stop()
}

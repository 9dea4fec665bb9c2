// Package jobs provides scheduled background tasks for the order workflow.
//
// Jobs use github.com/robfig/cron/v3 and are coordinated through JobManager:
//
//	jobManager := jobs.NewJobManager(orders, directory, mailer, messenger, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// PaymentReminderJob runs hourly and nudges customers whose approved order has
// been sitting in awaiting_final_payment for more than 24 hours, counted from
// the approval, not from checkout. Each order is reminded at most once; a
// failed mail stays unmarked and is retried on the next run. Reminders are
// best effort: failures are logged per order and never block the batch.
package jobs

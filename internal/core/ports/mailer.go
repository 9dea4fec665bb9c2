package ports

import "context"

// Mailer sends notification emails through the platform. Delivery is best
// effort; a failed send is logged and never blocks the workflow.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

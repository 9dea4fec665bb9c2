package eventhandlers

import (
	"context"
	"fmt"
	"strings"

	"trackorder/internal/core/application/events"
	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/ports"
)

// ThreadMessageHandler mirrors each workflow step into the order's
// conversation thread so both parties see the history in one place. Events
// without a thread reference are skipped.
type ThreadMessageHandler struct {
	messenger ports.Messenger
}

// NewThreadMessageHandler creates the thread subscriber.
func NewThreadMessageHandler(messenger ports.Messenger) *ThreadMessageHandler {
	return &ThreadMessageHandler{messenger: messenger}
}

// Handle posts the thread message for events that have one. Messages written
// in first person are attributed to the acting party; status notices post as
// the system.
func (h *ThreadMessageHandler) Handle(ctx context.Context, event events.Event) error {
	var threadID *int64
	var author kernel.UserID
	var body string

	switch e := event.(type) {
	case events.OrderPlaced:
		threadID = e.ThreadID
		body = fmt.Sprintf("New custom track order #%s has been placed. "+
			"The producer will begin working on your track after the deposit payment is confirmed.", e.OrderID)

	case events.DepositConfirmed:
		threadID = e.ThreadID
		body = fmt.Sprintf("Deposit payment for order #%s has been received. "+
			"The producer can now start working on your track.", e.OrderID)

	case events.DemoUploaded:
		threadID = e.ThreadID
		author = e.ProducerID
		body = fmt.Sprintf("I have uploaded a demo for your review. [Listen to Demo](%s)", e.DemoURL)

	case events.DemoApproved:
		threadID = e.ThreadID
		author = e.CustomerID
		body = fmt.Sprintf("I have approved the demo. To receive the final track, "+
			"please complete the remaining payment here: [Pay Now](%s)", e.PaymentURL)

	case events.RevisionRequested:
		threadID = e.ThreadID
		author = e.CustomerID
		body = fmt.Sprintf("I am requesting a revision for the demo. Here are my notes: %s", e.Feedback)

	case events.FinalFilesDelivered:
		threadID = e.ThreadID
		author = e.ProducerID
		body = fmt.Sprintf("I have uploaded the final files for your order: %s", fileLinks(e.Files))

	case events.ReceiptConfirmed:
		threadID = e.ThreadID
		author = e.CustomerID
		body = "I have received the final files and confirm the order is complete."
	}

	if threadID == nil || body == "" {
		return nil
	}

	return h.messenger.PostMessage(ctx, *threadID, author, body)
}

func fileLinks(files []events.DeliveredFile) string {
	links := make([]string, 0, len(files))
	for _, f := range files {
		links = append(links, fmt.Sprintf("[%s](%s)", f.Name, f.URL))
	}
	return strings.Join(links, " ")
}

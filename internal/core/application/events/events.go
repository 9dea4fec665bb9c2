package events

import (
	"trackorder/internal/core/domain/model/kernel"
)

// Event is one workflow occurrence published after its transaction commits.
// Subscribers receive every event and filter by name.
type Event interface {
	EventName() string
}

// OrderContext carries the identifiers every event needs: which order, who
// the parties are, and the conversation thread if one exists.
type OrderContext struct {
	OrderID    kernel.OrderID
	ProducerID kernel.UserID
	CustomerID kernel.UserID

	// ThreadID is nil when no conversation thread was created for the order.
	ThreadID *int64
}

// OrderPlaced fires when the order record is created at checkout completion.
type OrderPlaced struct {
	OrderContext
	Total   kernel.Money
	Deposit kernel.Money
}

func (OrderPlaced) EventName() string { return "order.placed" }

// DepositConfirmed fires the first time the deposit payment clears.
// Duplicate payment hooks are absorbed before publication.
type DepositConfirmed struct {
	OrderContext
	Amount kernel.Money
}

func (DepositConfirmed) EventName() string { return "order.deposit_confirmed" }

// DemoUploaded fires when the producer submits a demo, including resubmissions
// after a revision request.
type DemoUploaded struct {
	OrderContext
	DemoURL string
}

func (DemoUploaded) EventName() string { return "order.demo_uploaded" }

// DemoApproved fires when the customer approves the demo. The balance order
// referenced here collects the remaining payment.
type DemoApproved struct {
	OrderContext
	BalanceOrderID kernel.OrderID
	Balance        kernel.Money
	PaymentURL     string
}

func (DemoApproved) EventName() string { return "order.demo_approved" }

// RevisionRequested fires when the customer sends the demo back for rework.
type RevisionRequested struct {
	OrderContext
	RevisionCount int
	MaxRevisions  int
	Feedback      string
}

func (RevisionRequested) EventName() string { return "order.revision_requested" }

// FinalPaymentConfirmed fires when the balance payment clears.
type FinalPaymentConfirmed struct {
	OrderContext
	Amount kernel.Money
}

func (FinalPaymentConfirmed) EventName() string { return "order.final_payment_confirmed" }

// DeliveredFile references one delivered file in a FinalFilesDelivered event.
type DeliveredFile struct {
	Name string
	URL  string
}

// FinalFilesDelivered fires when the producer uploads the final deliverables
// and the order completes.
type FinalFilesDelivered struct {
	OrderContext
	Files []DeliveredFile
}

func (FinalFilesDelivered) EventName() string { return "order.final_files_delivered" }

// ReceiptConfirmed fires when the customer confirms delivery and the platform
// payment orders are closed out.
type ReceiptConfirmed struct {
	OrderContext
}

func (ReceiptConfirmed) EventName() string { return "order.receipt_confirmed" }

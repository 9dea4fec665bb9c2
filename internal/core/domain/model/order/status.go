package order

import (
	"fmt"

	"trackorder/internal/pkg/errs"
)

// Status represents the lifecycle state of a track order.
// Transitions are validated by the methods below; each returns the new status
// or an error, so the aggregate can never hold a state reached by skipping a
// required step.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// PendingDemoSubmission is the initial status: the order exists and the
	// producer owes the customer a demo. Revisions return the order here.
	PendingDemoSubmission

	// AwaitingCustomerApproval means a demo has been uploaded and the customer
	// must approve it or request a revision.
	AwaitingCustomerApproval

	// AwaitingFinalPayment means the demo was approved and the 70% balance
	// order has been issued but not yet paid.
	AwaitingFinalPayment

	// AwaitingFinalDelivery means the balance cleared and the producer owes
	// the final files.
	AwaitingFinalDelivery

	// Completed is the terminal status: final files are delivered.
	// Receipt confirmation happens here without a further transition.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                  "unknown",
		PendingDemoSubmission:    "pending_demo_submission",
		AwaitingCustomerApproval: "awaiting_customer_approval",
		AwaitingFinalPayment:     "awaiting_final_payment",
		AwaitingFinalDelivery:    "awaiting_final_delivery",
		Completed:                "completed",
	}
}

// StatusFromString parses the persisted representation of a status.
// Returns an error for anything outside the defined set; "unknown" is not a
// persistable status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the snake_case name of the status, which is also the
// persisted representation.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// SubmitDemo transitions to AwaitingCustomerApproval.
// Valid only from PendingDemoSubmission.
func (s Status) SubmitDemo() (Status, error) {
	if s != PendingDemoSubmission {
		return Unknown, invalidTransition(s, "submit a demo")
	}
	return AwaitingCustomerApproval, nil
}

// Approve transitions to AwaitingFinalPayment.
// Valid only from AwaitingCustomerApproval.
func (s Status) Approve() (Status, error) {
	if s != AwaitingCustomerApproval {
		return Unknown, invalidTransition(s, "approve the demo")
	}
	return AwaitingFinalPayment, nil
}

// RequestRevision transitions back to PendingDemoSubmission.
// Valid only from AwaitingCustomerApproval.
func (s Status) RequestRevision() (Status, error) {
	if s != AwaitingCustomerApproval {
		return Unknown, invalidTransition(s, "request a revision")
	}
	return PendingDemoSubmission, nil
}

// ConfirmFinalPayment transitions to AwaitingFinalDelivery.
// Valid only from AwaitingFinalPayment.
func (s Status) ConfirmFinalPayment() (Status, error) {
	if s != AwaitingFinalPayment {
		return Unknown, invalidTransition(s, "confirm the final payment")
	}
	return AwaitingFinalDelivery, nil
}

// DeliverFinalFiles transitions to Completed.
// Valid only from AwaitingFinalDelivery.
func (s Status) DeliverFinalFiles() (Status, error) {
	if s != AwaitingFinalDelivery {
		return Unknown, invalidTransition(s, "deliver final files")
	}
	return Completed, nil
}

func invalidTransition(from Status, action string) error {
	return fmt.Errorf("%w: cannot %s while the order is %s", ErrInvalidState, action, from)
}

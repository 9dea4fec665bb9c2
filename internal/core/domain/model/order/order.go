package order

import (
	"errors"
	"time"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/errs"
)

// CommissionSpec holds the creative brief the customer submitted at checkout.
// It is immutable once the order record exists.
type CommissionSpec struct {
	ServiceType  string
	Genres       []string
	BPM          int
	Mood         string
	TrackLength  string
	Instructions string
}

// Validate checks the brief carries the required fields.
func (s CommissionSpec) Validate() error {
	if s.ServiceType == "" {
		return errs.NewValueIsRequiredError("serviceType")
	}
	if s.BPM < 0 {
		return errs.NewValueIsInvalidError("bpm")
	}
	return nil
}

// TrackOrder is the aggregate root for one commissioned track. It is keyed by
// the payment order that carried the deposit, owns the workflow status, and
// enforces every transition guard: actor identity, payment gates, and the
// revision limit.
//
// All mutation goes through the transition methods; a method returning an
// error leaves the aggregate untouched.
type TrackOrder struct {
	id         kernel.OrderID
	producerID kernel.UserID
	customerID kernel.UserID

	spec   CommissionSpec
	addons []Addon

	// total is the full commission price captured at checkout. The 70%
	// balance is always derived from this stored value, never recomputed
	// from the producer's current settings.
	total   kernel.Money
	deposit kernel.Money

	status         Status
	depositPaid    bool
	finalPaid      bool
	demoURL        string
	demoApproved   bool
	finalFiles     []FinalFile
	referenceFiles []ReferenceFile
	revisionCount  int

	// finalPaymentOrderID references the follow-up platform order created at
	// approval time. Nil until the demo is approved.
	finalPaymentOrderID *kernel.OrderID

	// messageThreadID references the marketplace conversation for this order.
	// Nil when thread creation failed or has not happened yet.
	messageThreadID *int64

	createdAt time.Time

	// statusChangedAt records when the order entered its current status.
	statusChangedAt time.Time

	// reminderSentAt records when the balance-payment reminder went out.
	// Nil until the reminder job mails the customer.
	reminderSentAt *time.Time

	isConstructed bool
}

// NewTrackOrder creates the order record at checkout completion. The order
// starts in PendingDemoSubmission with the deposit unpaid; the deposit amount
// is fixed at 30% of the stored total.
func NewTrackOrder(
	id kernel.OrderID,
	producerID kernel.UserID,
	customerID kernel.UserID,
	spec CommissionSpec,
	addons []Addon,
	total kernel.Money,
) (*TrackOrder, error) {
	if err := errors.Join(
		validateID("orderId", id.Validate()),
		validateID("producerId", producerID.Validate()),
		validateID("customerId", customerID.Validate()),
		spec.Validate(),
		validateAddons(addons),
	); err != nil {
		return nil, err
	}
	if producerID.IsEqual(customerID) {
		return nil, errs.NewValueIsInvalidError("producer and customer must be different users")
	}
	if total.IsZero() {
		return nil, errs.NewValueIsRequiredError("total price")
	}

	now := time.Now().UTC()
	return &TrackOrder{
		id:              id,
		producerID:      producerID,
		customerID:      customerID,
		spec:            spec,
		addons:          addons,
		total:           total,
		deposit:         total.Share(30),
		status:          PendingDemoSubmission,
		createdAt:       now,
		statusChangedAt: now,
		isConstructed:   true,
	}, nil
}

// RestoreTrackOrder reconstructs an aggregate from persistence. The repository
// is the only intended caller; it passes fields exactly as stored.
func RestoreTrackOrder(
	id kernel.OrderID,
	producerID kernel.UserID,
	customerID kernel.UserID,
	spec CommissionSpec,
	addons []Addon,
	total kernel.Money,
	status Status,
	depositPaid bool,
	finalPaid bool,
	demoURL string,
	demoApproved bool,
	finalFiles []FinalFile,
	referenceFiles []ReferenceFile,
	revisionCount int,
	finalPaymentOrderID *kernel.OrderID,
	messageThreadID *int64,
	createdAt time.Time,
	statusChangedAt time.Time,
	reminderSentAt *time.Time,
) (*TrackOrder, error) {
	if err := errors.Join(
		validateID("orderId", id.Validate()),
		validateID("producerId", producerID.Validate()),
		validateID("customerId", customerID.Validate()),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if revisionCount < 0 {
		return nil, errs.NewValueIsInvalidError("revisionCount")
	}
	if statusChangedAt.IsZero() {
		statusChangedAt = createdAt
	}

	return &TrackOrder{
		id:                  id,
		producerID:          producerID,
		customerID:          customerID,
		spec:                spec,
		addons:              addons,
		total:               total,
		deposit:             total.Share(30),
		status:              status,
		depositPaid:         depositPaid,
		finalPaid:           finalPaid,
		demoURL:             demoURL,
		demoApproved:        demoApproved,
		finalFiles:          finalFiles,
		referenceFiles:      referenceFiles,
		revisionCount:       revisionCount,
		finalPaymentOrderID: finalPaymentOrderID,
		messageThreadID:     messageThreadID,
		createdAt:           createdAt,
		statusChangedAt:     statusChangedAt,
		reminderSentAt:      reminderSentAt,
		isConstructed:       true,
	}, nil
}

// Validate ensures the aggregate was created through a constructor.
func (o *TrackOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrTrackOrderIsNotConstructed
	}
	return nil
}

// ID returns the originating payment order identifier.
func (o *TrackOrder) ID() kernel.OrderID { return o.id }

// ProducerID returns the producer on the order.
func (o *TrackOrder) ProducerID() kernel.UserID { return o.producerID }

// CustomerID returns the customer on the order.
func (o *TrackOrder) CustomerID() kernel.UserID { return o.customerID }

// Spec returns the commission brief.
func (o *TrackOrder) Spec() CommissionSpec { return o.spec }

// Addons returns the priced extras selected at checkout.
func (o *TrackOrder) Addons() []Addon { return o.addons }

// Total returns the full commission price captured at checkout.
func (o *TrackOrder) Total() kernel.Money { return o.total }

// Deposit returns the 30% deposit amount.
func (o *TrackOrder) Deposit() kernel.Money { return o.deposit }

// Balance returns the amount still owed after the deposit, derived from the
// stored total.
func (o *TrackOrder) Balance() kernel.Money {
	balance, _ := o.total.Sub(o.deposit)
	return balance
}

// Status returns the current workflow status.
func (o *TrackOrder) Status() Status { return o.status }

// DepositPaid reports whether the deposit payment has cleared.
func (o *TrackOrder) DepositPaid() bool { return o.depositPaid }

// FinalPaid reports whether the 70% balance payment has cleared.
func (o *TrackOrder) FinalPaid() bool { return o.finalPaid }

// DemoURL returns the stored demo location, empty before the first upload.
func (o *TrackOrder) DemoURL() string { return o.demoURL }

// DemoApproved reports whether the customer approved the demo.
func (o *TrackOrder) DemoApproved() bool { return o.demoApproved }

// FinalFiles returns the delivered files; non-empty only once Completed.
func (o *TrackOrder) FinalFiles() []FinalFile { return o.finalFiles }

// ReferenceFiles returns the reference material the customer attached.
func (o *TrackOrder) ReferenceFiles() []ReferenceFile { return o.referenceFiles }

// RevisionCount returns how many revisions the customer has requested.
func (o *TrackOrder) RevisionCount() int { return o.revisionCount }

// FinalPaymentOrderID returns the follow-up payment order reference, or nil
// before approval.
func (o *TrackOrder) FinalPaymentOrderID() *kernel.OrderID { return o.finalPaymentOrderID }

// MessageThreadID returns the marketplace thread reference, or nil when no
// thread exists.
func (o *TrackOrder) MessageThreadID() *int64 { return o.messageThreadID }

// CreatedAt returns the creation timestamp.
func (o *TrackOrder) CreatedAt() time.Time { return o.createdAt }

// StatusChangedAt returns when the order entered its current status.
func (o *TrackOrder) StatusChangedAt() time.Time { return o.statusChangedAt }

// ReminderSentAt returns when the balance-payment reminder was sent, or nil.
func (o *TrackOrder) ReminderSentAt() *time.Time { return o.reminderSentAt }

// MarkReminderSent records that the balance-payment reminder went out, so the
// reminder job does not mail the same order again.
func (o *TrackOrder) MarkReminderSent(at time.Time) {
	o.reminderSentAt = &at
}

// AttachMessageThread records the marketplace thread created for this order.
func (o *TrackOrder) AttachMessageThread(threadID int64) {
	o.messageThreadID = &threadID
}

// ConfirmDeposit marks the deposit as paid. The call is idempotent: it reports
// whether this invocation changed anything, so duplicate payment hooks can be
// absorbed without emitting a second notification.
func (o *TrackOrder) ConfirmDeposit() bool {
	if o.depositPaid {
		return false
	}
	o.depositPaid = true
	return true
}

// SubmitDemo records a demo upload by the producer and moves the order to
// AwaitingCustomerApproval. The deposit must have cleared first.
func (o *TrackOrder) SubmitDemo(actor kernel.UserID, demoURL string) error {
	if !actor.IsEqual(o.producerID) {
		return ErrNotAuthorized
	}
	if demoURL == "" {
		return errs.NewValueIsRequiredError("demoUrl")
	}
	if !o.depositPaid {
		return errors.Join(ErrInvalidState, errors.New("deposit has not been paid"))
	}

	newStatus, err := o.status.SubmitDemo()
	if err != nil {
		return err
	}

	o.setStatus(newStatus)
	o.demoURL = demoURL
	return nil
}

// ApproveDemo records the customer's approval and moves the order to
// AwaitingFinalPayment. The follow-up payment order is created by the
// application layer from Balance().
func (o *TrackOrder) ApproveDemo(actor kernel.UserID) error {
	if !actor.IsEqual(o.customerID) {
		return ErrNotAuthorized
	}

	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.setStatus(newStatus)
	o.demoApproved = true
	return nil
}

// AttachFinalPaymentOrder records the follow-up platform order issued for the
// 70% balance.
func (o *TrackOrder) AttachFinalPaymentOrder(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.finalPaymentOrderID = &id
	return nil
}

// RequestRevision sends the order back to PendingDemoSubmission and counts the
// revision against the producer's configured maximum.
func (o *TrackOrder) RequestRevision(actor kernel.UserID, maxRevisions int) error {
	if !actor.IsEqual(o.customerID) {
		return ErrNotAuthorized
	}

	newStatus, err := o.status.RequestRevision()
	if err != nil {
		return err
	}
	if o.revisionCount >= maxRevisions {
		return ErrRevisionLimitExceeded
	}

	o.setStatus(newStatus)
	o.revisionCount++
	return nil
}

// ConfirmFinalPayment marks the balance as paid and moves the order to
// AwaitingFinalDelivery.
func (o *TrackOrder) ConfirmFinalPayment() error {
	newStatus, err := o.status.ConfirmFinalPayment()
	if err != nil {
		return err
	}

	o.setStatus(newStatus)
	o.finalPaid = true
	return nil
}

// DeliverFinalFiles records the producer's delivery and completes the order.
// The balance must have cleared and at least one file must have been stored.
func (o *TrackOrder) DeliverFinalFiles(actor kernel.UserID, files []FinalFile) error {
	if !actor.IsEqual(o.producerID) {
		return ErrNotAuthorized
	}
	if !o.finalPaid {
		return errors.Join(ErrInvalidState, errors.New("final payment has not been made"))
	}
	if len(files) == 0 {
		return ErrNoFinalFiles
	}
	for _, f := range files {
		if err := f.Validate(); err != nil {
			return err
		}
	}

	newStatus, err := o.status.DeliverFinalFiles()
	if err != nil {
		return err
	}

	o.setStatus(newStatus)
	o.finalFiles = files
	return nil
}

// AttachReferenceFiles records reference material uploaded by the customer.
// Reference uploads never change the workflow status.
func (o *TrackOrder) AttachReferenceFiles(actor kernel.UserID, files []ReferenceFile) error {
	if !actor.IsEqual(o.customerID) {
		return ErrNotAuthorized
	}
	for _, f := range files {
		if err := f.Validate(); err != nil {
			return err
		}
	}

	o.referenceFiles = append(o.referenceFiles, files...)
	return nil
}

func (o *TrackOrder) setStatus(s Status) {
	o.status = s
	o.statusChangedAt = time.Now().UTC()
}

// ConfirmReceipt validates the customer's delivery confirmation. The order
// stays Completed; the application layer marks the platform orders complete.
func (o *TrackOrder) ConfirmReceipt(actor kernel.UserID) error {
	if !actor.IsEqual(o.customerID) {
		return ErrNotAuthorized
	}
	if o.status != Completed {
		return invalidTransition(o.status, "confirm receipt")
	}
	return nil
}

func validateID(name string, err error) error {
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func validateAddons(addons []Addon) error {
	for _, a := range addons {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

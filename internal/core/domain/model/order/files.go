package order

import (
	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/errs"
)

// Addon is a priced extra selected for the commission, such as stems or an
// extended license. The list on an order is rebuilt from the producer's
// settings at creation time and is immutable afterwards, so the stored total
// cannot drift when the producer later changes pricing.
type Addon struct {
	Name  string
	Price kernel.Money
}

// Validate checks that the addon carries a name.
func (a Addon) Validate() error {
	if a.Name == "" {
		return errs.NewValueIsRequiredError("addon name")
	}
	return nil
}

// FinalFile is one delivered file on a completed order. The ID is generated
// when the file is stored and is the only handle clients use to request
// download URLs.
type FinalFile struct {
	ID   kernel.FileID
	Name string
	URL  string
}

// Validate checks the file reference is complete.
func (f FinalFile) Validate() error {
	if err := f.ID.Validate(); err != nil {
		return err
	}
	if f.Name == "" {
		return errs.NewValueIsRequiredError("file name")
	}
	if f.URL == "" {
		return errs.NewValueIsRequiredError("file URL")
	}
	return nil
}

// ReferenceFile is one piece of reference material the customer attached to
// the commission: an example track, a sketch, or a video clip the track
// should score.
type ReferenceFile struct {
	ID   kernel.FileID
	Name string
	URL  string
}

// Validate checks the file reference is complete.
func (f ReferenceFile) Validate() error {
	if err := f.ID.Validate(); err != nil {
		return err
	}
	if f.Name == "" {
		return errs.NewValueIsRequiredError("file name")
	}
	if f.URL == "" {
		return errs.NewValueIsRequiredError("file URL")
	}
	return nil
}

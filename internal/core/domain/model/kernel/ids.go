package kernel

import (
	"fmt"
	"strconv"

	"trackorder/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrOrderIDIsNotConstructed is returned when validating a zero-value OrderID.
	ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError("order ID must be created via NewOrderID")

	// ErrUserIDIsNotConstructed is returned when validating a zero-value UserID.
	ErrUserIDIsNotConstructed = errs.NewValueIsRequiredError("user ID must be created via NewUserID")

	// ErrFileIDIsNotConstructed is returned when validating an empty FileID.
	ErrFileIDIsNotConstructed = errs.NewValueIsRequiredError("file ID must be created via NewFileID or FileIDFromString")
)

// OrderID identifies a commission by the payment order that originated it.
// The value is issued by the e-commerce platform and is immutable for the
// lifetime of the order record.
type OrderID struct {
	id int64
}

// NewOrderID wraps a platform-issued order identifier.
// Returns an error when the value is not a positive integer.
func NewOrderID(id int64) (OrderID, error) {
	if id <= 0 {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d is not greater than 0", id))
	}
	return OrderID{id: id}, nil
}

// Int64 returns the raw platform identifier.
func (o OrderID) Int64() int64 {
	return o.id
}

// String returns the decimal representation of the identifier.
func (o OrderID) String() string {
	return strconv.FormatInt(o.id, 10)
}

// IsEqual compares two order identifiers by value.
func (o OrderID) IsEqual(other OrderID) bool {
	return o.id == other.id
}

// Validate returns ErrOrderIDIsNotConstructed for the zero value.
func (o OrderID) Validate() error {
	if o.id <= 0 {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}

// UserID identifies a producer or customer account on the platform.
type UserID struct {
	id int64
}

// NewUserID wraps a platform-issued user identifier.
// Returns an error when the value is not a positive integer.
func NewUserID(id int64) (UserID, error) {
	if id <= 0 {
		return UserID{}, errs.NewValueIsInvalidErrorWithCause("userId",
			fmt.Errorf("%d is not greater than 0", id))
	}
	return UserID{id: id}, nil
}

// Int64 returns the raw platform identifier.
func (u UserID) Int64() int64 {
	return u.id
}

// String returns the decimal representation of the identifier.
func (u UserID) String() string {
	return strconv.FormatInt(u.id, 10)
}

// IsEqual compares two user identifiers by value.
func (u UserID) IsEqual(other UserID) bool {
	return u.id == other.id
}

// Validate returns ErrUserIDIsNotConstructed for the zero value.
func (u UserID) Validate() error {
	if u.id <= 0 {
		return ErrUserIDIsNotConstructed
	}
	return nil
}

// FileID identifies a stored file within an order. Generated when the file is
// persisted, so client-supplied identifiers never address storage directly.
type FileID struct {
	id string
}

// NewFileID generates a new random file identifier.
func NewFileID() FileID {
	return FileID{id: uuid.NewString()}
}

// FileIDFromString reconstructs a FileID from its persisted form.
func FileIDFromString(s string) (FileID, error) {
	if s == "" {
		return FileID{}, ErrFileIDIsNotConstructed
	}
	return FileID{id: s}, nil
}

// String returns the identifier value.
func (f FileID) String() string {
	return f.id
}

// IsEqual compares two file identifiers by value.
func (f FileID) IsEqual(other FileID) bool {
	return f.id == other.id
}

// Validate returns ErrFileIDIsNotConstructed for the zero value.
func (f FileID) Validate() error {
	if f.id == "" {
		return ErrFileIDIsNotConstructed
	}
	return nil
}

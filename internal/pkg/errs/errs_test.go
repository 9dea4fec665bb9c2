package errs_test

import (
	"errors"
	"testing"

	"trackorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "4211")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "4211", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 4211", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("fileId", "demo", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: fileId, ID is: demo (cause: connection reset)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("bpm")

		assert.Equal(t, "value is invalid: bpm", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("not a number")
		err := errs.NewValueIsInvalidErrorWithCause("bpm", cause)

		assert.Equal(t, "value is invalid: bpm (cause: not a number)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("revisionCount", 3, 0, 2)

	assert.Equal(t, "value is invalid: 3 is revisionCount, min value is 0, max value is 2", err.Error())
	assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("producerId")

	assert.Equal(t, "value is required: producerId", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("mood"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("bpm", 400, 40, 300), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("customerId"), errs.ErrValueIsRequired)
}

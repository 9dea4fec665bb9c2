package kernel_test

import (
	"testing"

	"trackorder/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderID(t *testing.T) {
	t.Run("wraps a positive platform id", func(t *testing.T) {
		id, err := kernel.NewOrderID(4211)

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, int64(4211), id.Int64())
		assert.Equal(t, "4211", id.String())
	})

	t.Run("rejects zero and negative ids", func(t *testing.T) {
		for _, raw := range []int64{0, -1} {
			_, err := kernel.NewOrderID(raw)
			require.Error(t, err)
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.OrderID

		require.ErrorIs(t, id.Validate(), kernel.ErrOrderIDIsNotConstructed)
	})

	t.Run("compares by value", func(t *testing.T) {
		a, _ := kernel.NewOrderID(1)
		b, _ := kernel.NewOrderID(1)
		c, _ := kernel.NewOrderID(2)

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})
}

func TestUserID(t *testing.T) {
	t.Run("wraps a positive platform id", func(t *testing.T) {
		id, err := kernel.NewUserID(77)

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, int64(77), id.Int64())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.UserID

		require.ErrorIs(t, id.Validate(), kernel.ErrUserIDIsNotConstructed)
	})
}

func TestFileID(t *testing.T) {
	t.Run("generated ids are unique and valid", func(t *testing.T) {
		a := kernel.NewFileID()
		b := kernel.NewFileID()

		require.NoError(t, a.Validate())
		assert.False(t, a.IsEqual(b))
	})

	t.Run("round-trips through its string form", func(t *testing.T) {
		a := kernel.NewFileID()

		b, err := kernel.FileIDFromString(a.String())

		require.NoError(t, err)
		assert.True(t, a.IsEqual(b))
	})

	t.Run("rejects the empty string", func(t *testing.T) {
		_, err := kernel.FileIDFromString("")

		require.ErrorIs(t, err, kernel.ErrFileIDIsNotConstructed)
	})
}

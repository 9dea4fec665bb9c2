package services_test

import (
	"testing"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/producer"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(t *testing.T) *producer.Settings {
	t.Helper()

	producerID, _ := kernel.NewUserID(7)
	basePrice, _ := kernel.NewMoneyFromCents(10000)
	stems, _ := kernel.NewMoneyFromCents(2000)
	tagged, _ := kernel.NewMoneyFromCents(500)

	s, err := producer.NewSettings(producerID, basePrice, map[string]kernel.Money{
		"stems":          stems,
		"tagged_version": tagged,
	}, 2, true)
	require.NoError(t, err)
	return s
}

func TestPricingService_Quote(t *testing.T) {
	svc := services.NewPricingService()

	t.Run("sums the base price and selected addons", func(t *testing.T) {
		addons, total, err := svc.Quote(testSettings(t), []string{"stems", "tagged_version"})

		require.NoError(t, err)
		assert.Equal(t, int64(12500), total.Cents())
		require.Len(t, addons, 2)
		assert.Equal(t, "stems", addons[0].Name)
		assert.Equal(t, "tagged_version", addons[1].Name)
	})

	t.Run("no addons selected", func(t *testing.T) {
		addons, total, err := svc.Quote(testSettings(t), nil)

		require.NoError(t, err)
		assert.Empty(t, addons)
		assert.Equal(t, int64(10000), total.Cents())
	})

	t.Run("duplicate selections are priced once", func(t *testing.T) {
		addons, total, err := svc.Quote(testSettings(t), []string{"stems", "stems", "stems"})

		require.NoError(t, err)
		require.Len(t, addons, 1)
		assert.Equal(t, int64(12000), total.Cents())
	})

	t.Run("identical selections yield an identical list regardless of order", func(t *testing.T) {
		a, totalA, err := svc.Quote(testSettings(t), []string{"tagged_version", "stems"})
		require.NoError(t, err)
		b, totalB, err := svc.Quote(testSettings(t), []string{"stems", "tagged_version"})
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.True(t, totalA.IsEqual(totalB))
	})

	t.Run("rejects an addon the producer does not offer", func(t *testing.T) {
		_, _, err := svc.Quote(testSettings(t), []string{"vinyl_pressing"})

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("deposit and balance sum back to the total", func(t *testing.T) {
		_, total, err := svc.Quote(testSettings(t), []string{"stems", "tagged_version"})
		require.NoError(t, err)

		deposit := svc.Deposit(total)
		balance, err := total.Sub(deposit)
		require.NoError(t, err)

		assert.Equal(t, int64(3750), deposit.Cents())
		assert.Equal(t, int64(8750), balance.Cents())
		assert.True(t, deposit.Add(balance).IsEqual(total))
	})
}

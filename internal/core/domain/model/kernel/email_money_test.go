package kernel_test

import (
	"testing"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		e, err := kernel.NewEmail("  Alice@X.com ")

		require.NoError(t, err)
		assert.Equal(t, "alice@x.com", e.String())

		other, err := kernel.NewEmail("alice@x.com")
		require.NoError(t, err)
		assert.True(t, e.IsEqual(other))
	})

	t.Run("empty is required", func(t *testing.T) {
		_, err := kernel.NewEmail("   ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("malformed is invalid", func(t *testing.T) {
		_, err := kernel.NewEmail("alice.x.com")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value", func(t *testing.T) {
		var e kernel.Email
		require.Error(t, e.Validate())
	})
}

func TestNewMoney(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := kernel.NewMoney(1550, "USD")

		require.NoError(t, err)
		assert.Equal(t, int64(1550), m.Amount())
		assert.Equal(t, "usd", m.Currency())
		assert.Equal(t, "15.50 USD", m.String())
		require.NoError(t, m.Validate())
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1, "usd")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("bad currency", func(t *testing.T) {
		_, err := kernel.NewMoney(100, "dollars")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value", func(t *testing.T) {
		var m kernel.Money
		require.ErrorIs(t, m.Validate(), errs.ErrValueIsRequired)
	})
}

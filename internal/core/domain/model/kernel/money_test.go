package kernel_test

import (
	"testing"

	"dropship/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money with valid amount and currency", func(t *testing.T) {
		m, err := kernel.NewMoney(1999, "USD")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, int64(1999), m.Amount())
		assert.Equal(t, "USD", m.Currency())
		assert.Equal(t, "1999 USD", m.String())
	})

	t.Run("should accept zero amount", func(t *testing.T) {
		m, err := kernel.NewMoney(0, "JPY")

		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Amount())
	})

	t.Run("should normalize lowercase currency", func(t *testing.T) {
		m, err := kernel.NewMoney(500, "eur")

		require.NoError(t, err)
		assert.Equal(t, "EUR", m.Currency())
	})

	t.Run("should fail with negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1, "USD")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount")
	})

	t.Run("should fail with empty currency", func(t *testing.T) {
		_, err := kernel.NewMoney(100, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "currency")
	})

	t.Run("should fail with malformed currency", func(t *testing.T) {
		for _, currency := range []string{"US", "DOLL", "U1D"} {
			_, err := kernel.NewMoney(100, currency)
			require.Error(t, err, "currency %q must be rejected", currency)
		}
	})
}

func TestMoney_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var m kernel.Money

		err := m.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, err)
	})
}

func TestMoney_Multiply(t *testing.T) {
	t.Run("should multiply amount keeping currency", func(t *testing.T) {
		m, _ := kernel.NewMoney(250, "USD")

		total, err := m.Multiply(4)

		require.NoError(t, err)
		assert.Equal(t, int64(1000), total.Amount())
		assert.Equal(t, "USD", total.Currency())
	})

	t.Run("should fail for non-positive quantity", func(t *testing.T) {
		m, _ := kernel.NewMoney(250, "USD")

		_, err := m.Multiply(0)
		require.Error(t, err)

		_, err = m.Multiply(-2)
		require.Error(t, err)
	})

	t.Run("should fail on zero value money", func(t *testing.T) {
		var m kernel.Money

		_, err := m.Multiply(2)

		require.Error(t, err)
	})
}

func TestMoney_IsEqual(t *testing.T) {
	a, _ := kernel.NewMoney(100, "USD")
	b, _ := kernel.NewMoney(100, "USD")
	c, _ := kernel.NewMoney(100, "EUR")
	d, _ := kernel.NewMoney(200, "USD")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(d))
}

package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.RequireFromString("100.50"), EUR)
		require.NoError(t, err)
		assert.Equal(t, EUR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.RequireFromString("100.5")))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", DKK)
		require.NoError(t, err)
		assert.Equal(t, "123.45", m.StringFixed(2))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", DKK)
		assert.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	a, _ := NewMoneyFromString("0.1", USD)
	b, _ := NewMoneyFromString("0.2", USD)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.RequireFromString("0.3")))

	_, err = a.Add(Zero(SEK))
	assert.Error(t, err)
}

func TestMoney_Equals(t *testing.T) {
	a, _ := NewMoneyFromString("10.00", GBP)
	b, _ := NewMoneyFromString("10", GBP)
	c, _ := NewMoneyFromString("10", EUR)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestMoney_String(t *testing.T) {
	m, _ := NewMoneyFromInt(42, SEK)
	assert.Equal(t, "42.00 SEK", m.String())
}

func TestMoney_JSON(t *testing.T) {
	m, _ := NewMoneyFromString("99.99", EUR)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"99.99","currency":"EUR"}`, string(data))
}

func TestCurrency(t *testing.T) {
	for _, c := range AllCurrencies() {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Currency("CNY").IsValid())

	c, err := ParseCurrency("DKK")
	require.NoError(t, err)
	assert.Equal(t, DKK, c)

	_, err = ParseCurrency("XXX")
	assert.Error(t, err)
}

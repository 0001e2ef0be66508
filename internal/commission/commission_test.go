package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	got, err := Compute(decimal.NewFromInt(50000), decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(5000)), "got %s", got)
}

func TestComputeZeroPercentage(t *testing.T) {
	for _, amount := range []int64{0, 1, 999, 50000} {
		got, err := Compute(decimal.NewFromInt(amount), decimal.Zero)
		require.NoError(t, err)
		assert.True(t, got.IsZero(), "amount %d: got %s", amount, got)
	}
}

func TestComputeFullPercentage(t *testing.T) {
	for _, amount := range []int64{0, 1, 999, 50000} {
		a := decimal.NewFromInt(amount)
		got, err := Compute(a, decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.True(t, got.Equal(a), "amount %d: got %s", amount, got)
	}
}

func TestComputeFractionalRate(t *testing.T) {
	rate := decimal.RequireFromString("12.5")
	got, err := Compute(decimal.NewFromInt(1000), rate)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(125)), "got %s", got)
}

func TestComputeDeterministic(t *testing.T) {
	amount := decimal.RequireFromString("12345.67")
	rate := decimal.RequireFromString("7.25")

	first, err := Compute(amount, rate)
	require.NoError(t, err)
	second, err := Compute(amount, rate)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.True(t, first.Equal(amount.Mul(rate).Div(decimal.NewFromInt(100))))
}

func TestComputeRejectsNegativeAmount(t *testing.T) {
	_, err := Compute(decimal.NewFromInt(-1), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestComputeRejectsOutOfRangePercentage(t *testing.T) {
	_, err := Compute(decimal.NewFromInt(100), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidPercentage)

	_, err = Compute(decimal.NewFromInt(100), decimal.RequireFromString("100.01"))
	assert.ErrorIs(t, err, ErrInvalidPercentage)
}

func TestRoundForDisplay(t *testing.T) {
	got := RoundForDisplay(decimal.RequireFromString("123.456"))
	assert.Equal(t, "123.46", got.StringFixed(2))
}

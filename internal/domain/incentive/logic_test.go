package incentive

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEqually(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		shares := SplitEqually(9000, 3)
		require.Len(t, shares, 3)
		assert.Equal(t, []float64{3000, 3000, 3000}, shares)
	})

	t.Run("remainder goes to first member", func(t *testing.T) {
		shares := SplitEqually(100, 3)
		require.Len(t, shares, 3)
		assert.Equal(t, 33.34, shares[0])
		assert.Equal(t, 33.33, shares[1])
		assert.Equal(t, 33.33, shares[2])
	})

	t.Run("shares always sum to the pot", func(t *testing.T) {
		for _, n := range []int{1, 2, 3, 7, 11} {
			shares := SplitEqually(5000.55, n)
			sum := decimal.Zero
			for _, s := range shares {
				sum = sum.Add(decimal.NewFromFloat(s))
			}
			got, _ := sum.Float64()
			assert.Equalf(t, 5000.55, got, "n=%d", n)
		}
	})

	t.Run("no members", func(t *testing.T) {
		assert.Nil(t, SplitEqually(100, 0))
	})
}

func TestValidateShares(t *testing.T) {
	t.Run("within the pot", func(t *testing.T) {
		assert.NoError(t, ValidateShares(1000, []float64{400, 300, 300}))
	})

	t.Run("under-allocation is allowed", func(t *testing.T) {
		assert.NoError(t, ValidateShares(1000, []float64{100}))
	})

	t.Run("over-allocation rejected", func(t *testing.T) {
		err := ValidateShares(1000, []float64{600, 500})
		assert.ErrorIs(t, err, ErrSharesExceedTotal)
	})

	t.Run("exact one-cent overflow rejected", func(t *testing.T) {
		err := ValidateShares(100, []float64{50, 50.01})
		assert.ErrorIs(t, err, ErrSharesExceedTotal)
	})

	t.Run("empty member list rejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidateShares(1000, nil), ErrNoMembers)
	})
}

package incentive

import "github.com/shopspring/decimal"

// SplitEqually divides total across n members to two decimal places, giving
// any rounding remainder to the first member so the shares always sum to
// exactly the total.
func SplitEqually(total float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	totalDec := decimal.NewFromFloat(total)
	share := totalDec.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	remainder := totalDec.Sub(share.Mul(decimal.NewFromInt(int64(n))))

	out := make([]float64, n)
	for i := range out {
		amount := share
		if i == 0 {
			amount = amount.Add(remainder)
		}
		out[i], _ = amount.Float64()
	}
	return out
}

// ValidateShares enforces the allocation invariant: the member shares may
// not sum past the pot.
func ValidateShares(total float64, amounts []float64) error {
	if len(amounts) == 0 {
		return ErrNoMembers
	}
	sum := decimal.Zero
	for _, amount := range amounts {
		sum = sum.Add(decimal.NewFromFloat(amount))
	}
	if sum.GreaterThan(decimal.NewFromFloat(total)) {
		return ErrSharesExceedTotal
	}
	return nil
}

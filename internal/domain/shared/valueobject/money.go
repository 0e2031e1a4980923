package valueobject

import (
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places money amounts are reported with
const MoneyPlaces int32 = 2

// Sum adds the amounts exactly and rounds once, half to even, to MoneyPlaces.
// Rounding only the final sum keeps [19.99, 5.005, 0.005] at 25.00.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total.RoundBank(MoneyPlaces)
}

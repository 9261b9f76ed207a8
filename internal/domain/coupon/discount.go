package coupon

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Discount returns the amount a coupon takes off the given subtotal:
// subtotal * percentage / 100, clamped to [0, subtotal] and rounded to
// 2 decimal places.
func Discount(c *Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}

	amount := subtotal.Mul(c.DiscountPercentage).Div(hundred)
	if amount.IsNegative() {
		return decimal.Zero
	}
	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	return amount.Round(2)
}

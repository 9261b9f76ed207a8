// Package cart implements the mutable shopping cart: an ordered line-item
// collection with at most one applied coupon, and the deterministic
// subtotal/discount/total computation checkout is priced from.
package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xenking/tastyflame/internal/domain/coupon"
)

// Item is one product entry in the cart. The cart holds at most one Item per
// ID and keeps insertion order.
type Item struct {
	ID       int
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Total returns the line total, price * quantity.
func (i Item) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Totals is the priced view of the cart: subtotal over all line items, the
// coupon discount (zero without a coupon), and their difference.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Repository persists the cart's line items and the applied coupon. The two
// live under separate keys on purpose: clearing the items does not touch the
// coupon.
type Repository interface {
	Items(ctx context.Context) ([]Item, error)
	SaveItems(ctx context.Context, items []Item) error

	// AppliedCoupon returns (nil, nil) when no coupon is applied.
	AppliedCoupon(ctx context.Context) (*coupon.Coupon, error)
	SaveAppliedCoupon(ctx context.Context, c coupon.Coupon) error
	DeleteAppliedCoupon(ctx context.Context) error
}

// Package coupon provides the storefront's coupon registry and the
// percentage discount calculation applied to a cart subtotal.
package coupon

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a coupon code is not in the registry.
// Lookups are case-sensitive: "tasty20" does not match "TASTY20".
var ErrNotFound = errors.New("coupon not found")

// Coupon is a named percentage discount. Coupons are immutable; the registry
// enumerates them statically.
type Coupon struct {
	Code               string
	DiscountPercentage decimal.Decimal
}

// Registry looks up coupons by their exact code.
type Registry interface {
	Find(ctx context.Context, code string) (*Coupon, error)
}

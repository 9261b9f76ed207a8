package coupon

import (
	"context"

	"github.com/shopspring/decimal"
)

var _ Registry = (*StaticRegistry)(nil)

// StaticRegistry is an in-memory Registry over a fixed coupon list.
type StaticRegistry struct {
	byCode map[string]Coupon
}

// NewStaticRegistry builds a registry from the given coupons.
func NewStaticRegistry(coupons ...Coupon) *StaticRegistry {
	byCode := make(map[string]Coupon, len(coupons))
	for _, c := range coupons {
		byCode[c.Code] = c
	}
	return &StaticRegistry{byCode: byCode}
}

// Builtin returns the registry of coupon codes the storefront ships with.
func Builtin() *StaticRegistry {
	return NewStaticRegistry(
		Coupon{Code: "WELCOME10", DiscountPercentage: decimal.NewFromInt(10)},
		Coupon{Code: "TASTY20", DiscountPercentage: decimal.NewFromInt(20)},
		Coupon{Code: "FLAME15", DiscountPercentage: decimal.NewFromInt(15)},
	)
}

// Find returns the coupon with the exact code, or ErrNotFound.
func (r *StaticRegistry) Find(_ context.Context, code string) (*Coupon, error) {
	c, ok := r.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

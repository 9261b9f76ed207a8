package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/tastyflame/internal/domain/cart"
	"github.com/xenking/tastyflame/internal/domain/coupon"
	"github.com/xenking/tastyflame/internal/storage"
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository persists cart line items under "cart" and the applied
// coupon under "appliedCoupon", mirroring the original localStorage layout.
type CartRepository struct {
	kv storage.KV
}

// NewCartRepository returns a CartRepository over the given store.
func NewCartRepository(kv storage.KV) *CartRepository {
	return &CartRepository{kv: kv}
}

type cartItemRecord struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type couponRecord struct {
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
}

// Items returns the stored line items; a store without a cart yields an
// empty cart.
func (r *CartRepository) Items(ctx context.Context) ([]cart.Item, error) {
	var records []cartItemRecord
	if _, err := getJSON(ctx, r.kv, storage.KeyCart, &records); err != nil {
		return nil, errors.Wrap(err, "load cart")
	}

	items := make([]cart.Item, len(records))
	for i, rec := range records {
		items[i] = cart.Item{
			ID:       rec.ID,
			Name:     rec.Name,
			Price:    rec.Price,
			Quantity: rec.Quantity,
		}
	}
	return items, nil
}

// SaveItems stores the line items, replacing the previous cart.
func (r *CartRepository) SaveItems(ctx context.Context, items []cart.Item) error {
	records := make([]cartItemRecord, len(items))
	for i, item := range items {
		records[i] = cartItemRecord{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}
	return errors.Wrap(setJSON(ctx, r.kv, storage.KeyCart, records), "save cart")
}

// AppliedCoupon returns the applied coupon, or (nil, nil) when none is.
func (r *CartRepository) AppliedCoupon(ctx context.Context) (*coupon.Coupon, error) {
	var rec couponRecord
	found, err := getJSON(ctx, r.kv, storage.KeyAppliedCoupon, &rec)
	if err != nil {
		return nil, errors.Wrap(err, "load coupon")
	}
	if !found {
		return nil, nil
	}
	return &coupon.Coupon{
		Code:               rec.Code,
		DiscountPercentage: rec.DiscountPercentage,
	}, nil
}

// SaveAppliedCoupon stores c, replacing any previously applied coupon.
func (r *CartRepository) SaveAppliedCoupon(ctx context.Context, c coupon.Coupon) error {
	rec := couponRecord{
		Code:               c.Code,
		DiscountPercentage: c.DiscountPercentage,
	}
	return errors.Wrap(setJSON(ctx, r.kv, storage.KeyAppliedCoupon, rec), "save coupon")
}

// DeleteAppliedCoupon removes the applied coupon; idempotent.
func (r *CartRepository) DeleteAppliedCoupon(ctx context.Context) error {
	return errors.Wrap(r.kv.Delete(ctx, storage.KeyAppliedCoupon), "delete coupon")
}

package cart

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/tastyflame/internal/domain/coupon"
)

// Store exposes the cart operations over an injected repository and coupon
// registry. Every method is a synchronous read-modify-write against the
// repository; the storefront has a single execution context, so no locking
// is layered on top.
type Store struct {
	repo    Repository
	coupons coupon.Registry
}

// NewStore creates a cart Store.
func NewStore(repo Repository, coupons coupon.Registry) *Store {
	return &Store{repo: repo, coupons: coupons}
}

// Items returns the current line items in insertion order.
func (s *Store) Items(ctx context.Context) ([]Item, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	return items, nil
}

// Add merges the item into the cart: an existing line with the same ID has
// its quantity incremented by item.Quantity, otherwise the item is appended.
// Items with a non-positive ID or quantity are ignored (the caller is
// expected to validate upstream; the cart never stores a malformed line).
func (s *Store) Add(ctx context.Context, item Item) error {
	if item.ID <= 0 || item.Quantity <= 0 {
		return nil
	}

	items, err := s.repo.Items(ctx)
	if err != nil {
		return errors.Wrap(err, "load cart")
	}

	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	return errors.Wrap(s.repo.SaveItems(ctx, items), "save cart")
}

// UpdateQuantity sets the quantity of the line with the given ID. A quantity
// of zero or less removes the line instead; an unknown ID is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, id)
	}

	items, err := s.repo.Items(ctx)
	if err != nil {
		return errors.Wrap(err, "load cart")
	}

	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = quantity
			return errors.Wrap(s.repo.SaveItems(ctx, items), "save cart")
		}
	}
	return nil
}

// Remove deletes the line with the given ID; unknown IDs are a no-op.
func (s *Store) Remove(ctx context.Context, id int) error {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return errors.Wrap(err, "load cart")
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}

	return errors.Wrap(s.repo.SaveItems(ctx, kept), "save cart")
}

// Clear empties the line items. The applied coupon is left in place; only
// RemoveCoupon clears it. That asymmetry is inherited from the original
// storefront and callers rely on it, so it is kept rather than "fixed".
func (s *Store) Clear(ctx context.Context) error {
	return errors.Wrap(s.repo.SaveItems(ctx, []Item{}), "save cart")
}

// ApplyCoupon looks the code up in the registry (case-sensitive) and applies
// it to the cart, replacing any previously applied coupon. On an unknown
// code it returns coupon.ErrNotFound and the prior coupon stays applied.
func (s *Store) ApplyCoupon(ctx context.Context, code string) (*coupon.Coupon, error) {
	c, err := s.coupons.Find(ctx, code)
	if err != nil {
		if errors.Is(err, coupon.ErrNotFound) {
			return nil, coupon.ErrNotFound
		}
		return nil, errors.Wrap(err, "lookup coupon")
	}

	if err := s.repo.SaveAppliedCoupon(ctx, *c); err != nil {
		return nil, errors.Wrap(err, "save coupon")
	}
	return c, nil
}

// RemoveCoupon clears the applied coupon. It is idempotent.
func (s *Store) RemoveCoupon(ctx context.Context) error {
	return errors.Wrap(s.repo.DeleteAppliedCoupon(ctx), "delete coupon")
}

// AppliedCoupon returns the currently applied coupon, or nil when none is.
func (s *Store) AppliedCoupon(ctx context.Context) (*coupon.Coupon, error) {
	c, err := s.repo.AppliedCoupon(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load coupon")
	}
	return c, nil
}

// Totals prices the current cart: subtotal is the sum of line totals,
// discount is the applied coupon's percentage of the subtotal (zero without
// a coupon), total is subtotal minus discount. A pure read: calling it any
// number of times without mutations yields identical results.
func (s *Store) Totals(ctx context.Context) (Totals, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return Totals{}, errors.Wrap(err, "load cart")
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total())
	}

	applied, err := s.repo.AppliedCoupon(ctx)
	if err != nil {
		return Totals{}, errors.Wrap(err, "load coupon")
	}
	discount := coupon.Discount(applied, subtotal)

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    total.Round(2),
	}, nil
}

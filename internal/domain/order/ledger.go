package order

import (
	"context"
	"sort"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/tastyflame/internal/domain/cart"
	"github.com/xenking/tastyflame/internal/domain/customer"
)

// Ledger encapsulates order placement and history over the cart store and
// an order repository.
type Ledger struct {
	repo Repository
	cart *cart.Store

	now   func() time.Time
	newID func(time.Time) string
}

// NewLedger creates a Ledger with the required dependencies.
func NewLedger(repo Repository, cartStore *cart.Store) *Ledger {
	return &Ledger{
		repo:  repo,
		cart:  cartStore,
		now:   time.Now,
		newID: NewID,
	}
}

// PlaceOrder checks out the current cart: it validates the customer info
// (collecting every violated rule), refuses an empty cart, freezes the line
// items, prices the order from the cart totals, appends the order to the
// ledger, and clears the cart items. The applied coupon survives the clear,
// as in the original storefront. Nothing is mutated on any failure path.
func (l *Ledger) PlaceOrder(ctx context.Context, info customer.Info, mode PaymentMode) (*Order, error) {
	if mode != PaymentCash && mode != PaymentUPI {
		return nil, ErrUnknownPaymentMode
	}

	if violations := customer.Validate(info); len(violations) > 0 {
		return nil, &customer.ValidationError{Violations: violations}
	}

	items, err := l.cart.Items(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals, err := l.cart.Totals(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "price cart")
	}

	now := l.now()
	o := Order{
		ID:          l.newID(now),
		Items:       append([]cart.Item(nil), items...),
		Customer:    info,
		CreatedAt:   now,
		Total:       totals.Total,
		Status:      StatusFor(mode),
		PaymentMode: mode,
	}

	orders, err := l.repo.Orders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}
	if err := l.repo.SaveOrders(ctx, append(orders, o)); err != nil {
		return nil, errors.Wrap(err, "save orders")
	}

	if err := l.cart.Clear(ctx); err != nil {
		return nil, errors.Wrap(err, "clear cart")
	}

	return &o, nil
}

// OrderByID returns the order with the given id, or ErrNotFound. The scan is
// linear; the ledger stays small enough that an index would be noise.
func (l *Ledger) OrderByID(ctx context.Context, id string) (*Order, error) {
	orders, err := l.repo.Orders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}

	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, ErrNotFound
}

// List returns all orders, most recent first. The whole collection is sorted
// on every call; acceptable at this scale and documented as the ceiling.
func (l *Ledger) List(ctx context.Context) ([]Order, error) {
	orders, err := l.repo.Orders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Reset wipes the ledger. Not part of the normal storefront flow; it exists
// for tools and tests.
func (l *Ledger) Reset(ctx context.Context) error {
	return errors.Wrap(l.repo.SaveOrders(ctx, []Order{}), "save orders")
}

// RetrofitLegacyStatus rewrites historical "Pending" records in place to the
// terminal status implied by their payment mode and reports how many rows
// changed. Old storefront versions created orders as Pending; current ones
// never do, so this runs only from the migration tool.
func RetrofitLegacyStatus(orders []Order) int {
	changed := 0
	for i := range orders {
		if orders[i].Status != statusPending {
			continue
		}
		orders[i].Status = StatusFor(orders[i].PaymentMode)
		changed++
	}
	return changed
}

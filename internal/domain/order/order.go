// Package order implements the append-only order ledger: checking out a
// cart into an immutable order record, id assignment, lookup and
// chronological listing.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/tastyflame/internal/domain/cart"
	"github.com/xenking/tastyflame/internal/domain/customer"
)

// PaymentMode selects how an order is paid.
type PaymentMode string

const (
	PaymentCash PaymentMode = "cash"
	PaymentUPI  PaymentMode = "upi"
)

// Status is the terminal state an order is created in. There is no pending
// state: payment mode decides the status at creation and it never changes.
type Status string

const (
	StatusCashOnDelivery Status = "Cash on Delivery"
	StatusPaidViaUPI     Status = "Paid via UPI"

	// statusPending only appears in ledgers written by old versions of the
	// storefront. RetrofitLegacyStatus rewrites it; new orders never get it.
	statusPending Status = "Pending"
)

// StatusFor maps a payment mode to the status a new order is created with.
// Mirroring the original storefront, anything other than cash maps to UPI;
// PlaceOrder rejects unknown modes before this runs.
func StatusFor(mode PaymentMode) Status {
	if mode == PaymentCash {
		return StatusCashOnDelivery
	}
	return StatusPaidViaUPI
}

var (
	// ErrEmptyCart is returned when checkout is attempted with no line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotFound is returned when no order has the requested id.
	ErrNotFound = errors.New("order not found")
	// ErrUnknownPaymentMode is returned for modes other than cash or upi.
	ErrUnknownPaymentMode = errors.New("unknown payment mode")
)

// Order is one finalized ledger entry. Items is a frozen copy of the cart at
// checkout time; the discount is already baked into Total. Orders are never
// mutated after creation.
type Order struct {
	ID          string
	Items       []cart.Item
	Customer    customer.Info
	CreatedAt   time.Time
	Total       decimal.Decimal
	Status      Status
	PaymentMode PaymentMode
}

// Repository persists the ledger as one collection. The ledger is small and
// read-modify-written whole, matching the persisted-store encoding.
type Repository interface {
	Orders(ctx context.Context) ([]Order, error)
	SaveOrders(ctx context.Context, orders []Order) error
}

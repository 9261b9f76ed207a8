// Package invoice builds printable invoices from orders or from a live cart
// snapshot. Rendering goes through the Renderer port; a failing or missing
// renderer is reported to the caller as a warning, never a crash.
package invoice

import (
	"io"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/tastyflame/internal/domain/cart"
	"github.com/xenking/tastyflame/internal/domain/customer"
	"github.com/xenking/tastyflame/internal/domain/order"
)

// ErrUnavailable is returned when no renderer is configured.
var ErrUnavailable = errors.New("invoice renderer unavailable")

// Invoice is the data a renderer consumes.
type Invoice struct {
	InvoiceID string
	Customer  customer.Info
	Items     []cart.Item
	Total     decimal.Decimal
	IssuedAt  time.Time
}

// Renderer draws an invoice document to w.
type Renderer interface {
	Render(inv Invoice, w io.Writer) error
}

// FromOrder builds an invoice for a finalized order; the order id doubles as
// the invoice number.
func FromOrder(o *order.Order, issuedAt time.Time) Invoice {
	return Invoice{
		InvoiceID: o.ID,
		Customer:  o.Customer,
		Items:     o.Items,
		Total:     o.Total,
		IssuedAt:  issuedAt,
	}
}

// Draft builds an invoice from a not-yet-ordered cart. Draft numbers reuse
// the original storefront's scheme: "DRAFT-" plus the last six digits of the
// millisecond timestamp.
func Draft(info customer.Info, items []cart.Item, total decimal.Decimal, issuedAt time.Time) Invoice {
	return Invoice{
		InvoiceID: DraftID(issuedAt),
		Customer:  info,
		Items:     items,
		Total:     total,
		IssuedAt:  issuedAt,
	}
}

// DraftID derives a draft invoice number from the given time.
func DraftID(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "DRAFT-" + ms
}

package invoice

import (
	"io"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-pdf/fpdf"
)

// Restaurant letterhead, as printed on every invoice.
const (
	restaurantName  = "TastyFlame Restaurant"
	restaurantAddr1 = "123 Flavor Street, Foodville"
	restaurantAddr2 = "Cuisine City, Food State - 123456"
	restaurantPhone = "Phone: +91 9876543210"

	// Core PDF fonts are cp1252; the rupee sign is not, so amounts carry a
	// plain "Rs" prefix.
	currencyPrefix = "Rs "

	pageWidth = 210.0 // A4 portrait, mm
)

var _ Renderer = (*PDF)(nil)

// PDF renders invoices as single-page A4 PDF documents: letterhead, invoice
// number and date, customer block, an items table, and the total under a
// ruled line.
type PDF struct{}

// NewPDF creates the PDF renderer.
func NewPDF() *PDF {
	return &PDF{}
}

// Render draws the invoice and writes the PDF to w.
func (p *PDF) Render(inv Invoice, w io.Writer) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	grey := func() { doc.SetTextColor(100, 100, 100) }
	dark := func() { doc.SetTextColor(33, 33, 33) }

	doc.SetFont("Helvetica", "B", 22)
	dark()
	centerText(doc, 20, restaurantName)

	doc.SetFont("Helvetica", "", 12)
	grey()
	centerText(doc, 30, restaurantAddr1)
	centerText(doc, 35, restaurantAddr2)
	centerText(doc, 40, restaurantPhone)

	doc.SetFont("Helvetica", "B", 18)
	dark()
	centerText(doc, 55, "INVOICE")

	doc.SetFont("Helvetica", "", 12)
	doc.Text(20, 70, "Invoice #: "+inv.InvoiceID)
	doc.Text(20, 77, "Date: "+inv.IssuedAt.Format("02/01/2006 15:04:05"))

	doc.SetFont("Helvetica", "B", 14)
	doc.Text(20, 90, "Customer Information")

	doc.SetFont("Helvetica", "", 12)
	doc.Text(20, 100, "Name: "+inv.Customer.Name)
	doc.Text(20, 107, "Email: "+inv.Customer.Email)
	doc.Text(20, 114, "Phone: "+inv.Customer.Phone)
	doc.Text(20, 121, "Address: "+inv.Customer.Address)

	doc.SetFont("Helvetica", "B", 14)
	doc.Text(20, 137, "Order Items")

	doc.SetFont("Helvetica", "", 12)
	grey()
	doc.Text(20, 147, "Item")
	doc.Text(100, 147, "Quantity")
	doc.Text(130, 147, "Price")
	doc.Text(170, 147, "Total")

	dark()
	y := 157.0
	for _, item := range inv.Items {
		doc.Text(20, y, item.Name)
		doc.Text(100, y, strconv.Itoa(item.Quantity))
		doc.Text(130, y, currencyPrefix+item.Price.StringFixed(2))
		doc.Text(170, y, currencyPrefix+item.Total().StringFixed(2))
		y += 10
	}

	doc.SetLineWidth(0.5)
	doc.Line(20, y, 190, y)
	y += 10

	doc.SetFont("Helvetica", "B", 14)
	doc.Text(130, y, "Total:")
	doc.Text(170, y, currencyPrefix+inv.Total.StringFixed(2))

	y += 30
	doc.SetFont("Helvetica", "", 12)
	grey()
	centerText(doc, y, "Thank you for your order!")

	if err := doc.Output(w); err != nil {
		return errors.Wrap(err, "write pdf")
	}
	return nil
}

// centerText draws s horizontally centered at height y.
func centerText(doc *fpdf.Fpdf, y float64, s string) {
	x := (pageWidth - doc.GetStringWidth(s)) / 2
	doc.Text(x, y, s)
}

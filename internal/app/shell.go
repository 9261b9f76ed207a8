package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/tastyflame/internal/domain/cart"
	"github.com/xenking/tastyflame/internal/domain/catalog"
	"github.com/xenking/tastyflame/internal/domain/coupon"
	"github.com/xenking/tastyflame/internal/domain/customer"
	"github.com/xenking/tastyflame/internal/domain/order"
	"github.com/xenking/tastyflame/internal/domain/user"
	"github.com/xenking/tastyflame/internal/invoice"
)

// ShellConfig holds the shell's non-service knobs.
type ShellConfig struct {
	InvoiceDir string
}

// Shell is the interactive storefront loop. Domain errors are reported to the
// user and the loop keeps going; only I/O failures on the terminal itself end
// the session.
type Shell struct {
	cfg      ShellConfig
	menu     *catalog.Service
	cart     *cart.Store
	orders   *order.Ledger
	renderer invoice.Renderer
	metrics  *metrics
	tracer   trace.Tracer
	lg       *zap.Logger

	now func() time.Time
}

// NewShell creates a Shell over the given services.
func NewShell(
	cfg ShellConfig,
	menu *catalog.Service,
	cartStore *cart.Store,
	orders *order.Ledger,
	renderer invoice.Renderer,
	mx *metrics,
	tracer trace.Tracer,
	lg *zap.Logger,
) *Shell {
	return &Shell{
		cfg:      cfg,
		menu:     menu,
		cart:     cartStore,
		orders:   orders,
		renderer: renderer,
		metrics:  mx,
		tracer:   tracer,
		lg:       lg,
		now:      time.Now,
	}
}

// Run reads commands from in until EOF, "exit", or context cancellation.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)

	fmt.Fprintln(out, "TastyFlame storefront. Type 'help' for commands.")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			break
		}

		args := strings.Fields(sc.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			break
		}

		if err := s.dispatch(ctx, sc, out, args); err != nil {
			fmt.Fprintln(out, "error:", err)
			s.lg.Debug("Command failed", zap.Strings("args", args), zap.Error(err))
		}
	}
	return errors.Wrap(sc.Err(), "read input")
}

func (s *Shell) dispatch(ctx context.Context, sc *bufio.Scanner, out io.Writer, args []string) error {
	switch args[0] {
	case "help":
		printHelp(out)
		return nil
	case "menu":
		return s.printMenu(ctx, out)
	case "categories":
		return s.printCategories(ctx, out)
	case "filter":
		if len(args) < 2 {
			return errors.New("usage: filter <category>")
		}
		return s.printFiltered(ctx, out, args[1])
	case "search":
		if len(args) < 2 {
			return errors.New("usage: search <query>")
		}
		return s.printSearch(ctx, out, strings.Join(args[1:], " "))
	case "add":
		return s.addToCart(ctx, out, args[1:])
	case "cart":
		return s.printCart(ctx, out)
	case "qty":
		return s.updateQuantity(ctx, out, args[1:])
	case "remove":
		if len(args) < 2 {
			return errors.New("usage: remove <item-id>")
		}
		return s.removeFromCart(ctx, out, args[1])
	case "coupon":
		return s.couponCommand(ctx, out, args[1:])
	case "clear":
		if err := s.cart.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "cart cleared")
		return nil
	case "checkout":
		if len(args) < 2 {
			return errors.New("usage: checkout <cash|upi>")
		}
		return s.checkout(ctx, sc, out, args[1])
	case "orders":
		return s.printOrders(ctx, out)
	case "order":
		if len(args) < 2 {
			return errors.New("usage: order <order-id>")
		}
		return s.printOrder(ctx, out, args[1])
	case "invoice":
		if len(args) < 2 {
			return errors.New("usage: invoice <order-id> | invoice draft")
		}
		return s.invoiceCommand(ctx, sc, out, args[1])
	case "rate":
		return s.rate(ctx, out, args[1:])
	default:
		return errors.Errorf("unknown command %q, type 'help'", args[0])
	}
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `commands:
  menu                      list the menu
  categories                list menu categories
  filter <category>         list one category ("all" for everything)
  search <query>            search names and descriptions
  add <id> [qty]            add a dish to the cart
  cart                      show the cart and totals
  qty <id> <n>              set a line's quantity (0 removes it)
  remove <id>               remove a line
  coupon [code|remove]      show, apply, or remove a coupon
  clear                     empty the cart
  checkout <cash|upi>       place the order
  orders                    list past orders, newest first
  order <id>                show one order
  invoice <id>|draft        write a PDF invoice
  rate <id> <stars> [text]  rate a dish (1-5)
  exit                      quit
`)
}

func (s *Shell) printMenu(ctx context.Context, out io.Writer) error {
	items, err := s.menu.List(ctx)
	if err != nil {
		return err
	}
	printItems(out, items)
	return nil
}

func (s *Shell) printCategories(ctx context.Context, out io.Writer) error {
	categories, err := s.menu.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Fprintln(out, c)
	}
	return nil
}

func (s *Shell) printFiltered(ctx context.Context, out io.Writer, category string) error {
	items, err := s.menu.FilterByCategory(ctx, category)
	if err != nil {
		return err
	}
	printItems(out, items)
	return nil
}

func (s *Shell) printSearch(ctx context.Context, out io.Writer, query string) error {
	items, err := s.menu.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "no dishes found")
		return nil
	}
	printItems(out, items)
	return nil
}

func printItems(out io.Writer, items []catalog.MenuItem) {
	for _, item := range items {
		line := fmt.Sprintf("%3d  %-24s %-10s Rs %s", item.ID, item.Name, item.Category, item.Price.StringFixed(2))
		if len(item.Ratings) > 0 {
			line += fmt.Sprintf("  %.1f* (%d)", item.AverageRating, len(item.Ratings))
		}
		fmt.Fprintln(out, line)
	}
}

func (s *Shell) addToCart(ctx context.Context, out io.Writer, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: add <item-id> [qty]")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Wrapf(err, "parse item id %q", args[0])
	}
	qty := 1
	if len(args) > 1 {
		qty, err = strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrapf(err, "parse quantity %q", args[1])
		}
	}

	item, err := s.menu.ItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return errors.Errorf("no dish with id %d", id)
		}
		return err
	}

	if err := s.cart.Add(ctx, cart.Item{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: qty,
	}); err != nil {
		return err
	}
	fmt.Fprintf(out, "added %d x %s\n", qty, item.Name)
	return nil
}

func (s *Shell) updateQuantity(ctx context.Context, out io.Writer, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: qty <item-id> <quantity>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Wrapf(err, "parse item id %q", args[0])
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Wrapf(err, "parse quantity %q", args[1])
	}
	if err := s.cart.UpdateQuantity(ctx, id, qty); err != nil {
		return err
	}
	return s.printCart(ctx, out)
}

func (s *Shell) removeFromCart(ctx context.Context, out io.Writer, arg string) error {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return errors.Wrapf(err, "parse item id %q", arg)
	}
	if err := s.cart.Remove(ctx, id); err != nil {
		return err
	}
	return s.printCart(ctx, out)
}

func (s *Shell) printCart(ctx context.Context, out io.Writer) error {
	items, err := s.cart.Items(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return nil
	}

	for _, item := range items {
		fmt.Fprintf(out, "%3d  %-24s %2d x Rs %s = Rs %s\n",
			item.ID, item.Name, item.Quantity,
			item.Price.StringFixed(2), item.Total().StringFixed(2))
	}

	totals, err := s.cart.Totals(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "subtotal: Rs %s\n", totals.Subtotal.StringFixed(2))

	applied, err := s.cart.AppliedCoupon(ctx)
	if err != nil {
		return err
	}
	if applied != nil {
		fmt.Fprintf(out, "coupon %s (-%s%%): -Rs %s\n",
			applied.Code, applied.DiscountPercentage.String(), totals.Discount.StringFixed(2))
	}
	fmt.Fprintf(out, "total: Rs %s\n", totals.Total.StringFixed(2))
	return nil
}

func (s *Shell) couponCommand(ctx context.Context, out io.Writer, args []string) error {
	if len(args) == 0 {
		applied, err := s.cart.AppliedCoupon(ctx)
		if err != nil {
			return err
		}
		if applied == nil {
			fmt.Fprintln(out, "no coupon applied")
			return nil
		}
		fmt.Fprintf(out, "%s (%s%% off)\n", applied.Code, applied.DiscountPercentage.String())
		return nil
	}

	if args[0] == "remove" {
		if err := s.cart.RemoveCoupon(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "coupon removed")
		return nil
	}

	c, err := s.cart.ApplyCoupon(ctx, args[0])
	if err != nil {
		if errors.Is(err, coupon.ErrNotFound) {
			return errors.Errorf("invalid coupon code %q", args[0])
		}
		return err
	}
	fmt.Fprintf(out, "applied %s (%s%% off)\n", c.Code, c.DiscountPercentage.String())
	return nil
}

func (s *Shell) checkout(ctx context.Context, sc *bufio.Scanner, out io.Writer, mode string) error {
	info, ok := promptCustomer(sc, out)
	if !ok {
		return errors.New("aborted")
	}

	ctx, span := s.tracer.Start(ctx, "Checkout")
	defer span.End()

	o, err := s.orders.PlaceOrder(ctx, info, order.PaymentMode(mode))
	if err != nil {
		var verr *customer.ValidationError
		switch {
		case errors.As(err, &verr):
			for _, v := range verr.Violations {
				fmt.Fprintln(out, v)
			}
			return errors.New("fix the details above and try again")
		case errors.Is(err, order.ErrEmptyCart):
			return errors.New("cart is empty")
		case errors.Is(err, order.ErrUnknownPaymentMode):
			return errors.Errorf("unknown payment mode %q: want cash or upi", mode)
		}
		return err
	}

	total, _ := o.Total.Float64()
	s.metrics.ordersPlaced.Add(ctx, 1,
		metric.WithAttributes(attribute.String("payment_mode", string(o.PaymentMode))))
	s.metrics.orderTotal.Record(ctx, total)
	s.lg.Info("Order placed",
		zap.String("order_id", o.ID),
		zap.String("total", o.Total.StringFixed(2)),
	)

	fmt.Fprintf(out, "order %s placed: Rs %s, %s\n", o.ID, o.Total.StringFixed(2), o.Status)
	return nil
}

func promptCustomer(sc *bufio.Scanner, out io.Writer) (customer.Info, bool) {
	var info customer.Info
	fields := []struct {
		label string
		dst   *string
	}{
		{"name", &info.Name},
		{"email", &info.Email},
		{"phone (10 digits)", &info.Phone},
		{"address", &info.Address},
	}
	for _, f := range fields {
		fmt.Fprintf(out, "%s: ", f.label)
		if !sc.Scan() {
			return customer.Info{}, false
		}
		*f.dst = strings.TrimSpace(sc.Text())
	}
	return info, true
}

func (s *Shell) printOrders(ctx context.Context, out io.Writer) error {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(out, "no orders yet")
		return nil
	}
	for _, o := range orders {
		fmt.Fprintf(out, "%-22s %s  Rs %8s  %s\n",
			o.ID, o.CreatedAt.Format("2006-01-02 15:04"),
			o.Total.StringFixed(2), o.Status)
	}
	return nil
}

func (s *Shell) printOrder(ctx context.Context, out io.Writer, id string) error {
	o, err := s.orders.OrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return errors.Errorf("no order %q", id)
		}
		return err
	}

	fmt.Fprintf(out, "order %s, %s\n", o.ID, o.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(out, "%s, %s, %s\n", o.Customer.Name, o.Customer.Phone, o.Customer.Address)
	for _, item := range o.Items {
		fmt.Fprintf(out, "  %-24s %2d x Rs %s\n", item.Name, item.Quantity, item.Price.StringFixed(2))
	}
	fmt.Fprintf(out, "total: Rs %s (%s)\n", o.Total.StringFixed(2), o.Status)
	return nil
}

func (s *Shell) invoiceCommand(ctx context.Context, sc *bufio.Scanner, out io.Writer, arg string) error {
	var inv invoice.Invoice
	if arg == "draft" {
		items, err := s.cart.Items(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return errors.New("cart is empty")
		}
		totals, err := s.cart.Totals(ctx)
		if err != nil {
			return err
		}
		info, ok := promptCustomer(sc, out)
		if !ok {
			return errors.New("aborted")
		}
		inv = invoice.Draft(info, items, totals.Total, s.now())
	} else {
		o, err := s.orders.OrderByID(ctx, arg)
		if err != nil {
			if errors.Is(err, order.ErrNotFound) {
				return errors.Errorf("no order %q", arg)
			}
			return err
		}
		inv = invoice.FromOrder(o, s.now())
	}

	path, err := s.writeInvoice(inv)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "invoice written to", path)
	return nil
}

func (s *Shell) writeInvoice(inv invoice.Invoice) (string, error) {
	if s.renderer == nil {
		return "", invoice.ErrUnavailable
	}
	if err := os.MkdirAll(s.cfg.InvoiceDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create invoice dir")
	}

	path := filepath.Join(s.cfg.InvoiceDir, inv.InvoiceID+".pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create invoice file")
	}
	if err := s.renderer.Render(inv, f); err != nil {
		_ = f.Close()
		return "", errors.Wrap(err, "render invoice")
	}
	return path, errors.Wrap(f.Close(), "close invoice file")
}

func (s *Shell) rate(ctx context.Context, out io.Writer, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: rate <item-id> <stars 1-5> [review]")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Wrapf(err, "parse item id %q", args[0])
	}
	stars, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Wrapf(err, "parse stars %q", args[1])
	}
	review := strings.Join(args[2:], " ")

	item, err := s.menu.Rate(ctx, id, stars, review)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidRating):
			return errors.New("rating must be between 1 and 5")
		case errors.Is(err, catalog.ErrNotFound):
			return errors.Errorf("no dish with id %d", id)
		case errors.Is(err, user.ErrNotSignedIn):
			return errors.New("sign in first (run store-seed to create the demo user)")
		}
		return err
	}

	fmt.Fprintf(out, "%s now rated %.1f across %d ratings\n",
		item.Name, item.AverageRating, len(item.Ratings))
	return nil
}

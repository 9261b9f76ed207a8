package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mnoop "go.opentelemetry.io/otel/metric/noop"
	tnoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/xenking/tastyflame/internal/domain/cart"
	"github.com/xenking/tastyflame/internal/domain/catalog"
	"github.com/xenking/tastyflame/internal/domain/coupon"
	"github.com/xenking/tastyflame/internal/domain/order"
	"github.com/xenking/tastyflame/internal/domain/user"
	"github.com/xenking/tastyflame/internal/invoice"
	"github.com/xenking/tastyflame/internal/repository"
	"github.com/xenking/tastyflame/internal/storage/memory"
)

func newTestShell(t *testing.T) *Shell {
	t.Helper()
	ctx := context.Background()
	kv := memory.New()

	catalogRepo := repository.NewCatalogRepository(kv)
	require.NoError(t, catalog.Seed(ctx, catalogRepo))

	userRepo := repository.NewUserRepository(kv)
	require.NoError(t, userRepo.SetCurrent(ctx, user.User{ID: "u1", Username: "asha"}))

	cartStore := cart.NewStore(repository.NewCartRepository(kv), coupon.Builtin())
	ledger := order.NewLedger(repository.NewOrderRepository(kv), cartStore)
	menu := catalog.NewService(catalogRepo, userRepo)

	mx, err := newMetrics(mnoop.NewMeterProvider())
	require.NoError(t, err)

	return NewShell(ShellConfig{InvoiceDir: t.TempDir()},
		menu, cartStore, ledger,
		invoice.NewPDF(),
		mx,
		tnoop.NewTracerProvider().Tracer("test"),
		zap.NewNop(),
	)
}

func runScript(t *testing.T, sh *Shell, script string) string {
	t.Helper()

	var out bytes.Buffer
	err := sh.Run(context.Background(), strings.NewReader(script), &out)
	require.NoError(t, err)
	return out.String()
}

func TestShell_MenuAndSearch(t *testing.T) {
	sh := newTestShell(t)

	out := runScript(t, sh, "menu\nsearch biryani\nfilter Desserts\ncategories\nexit\n")

	assert.Contains(t, out, "Butter Chicken")
	assert.Contains(t, out, "Veg Biryani")
	assert.Contains(t, out, "Chicken Biryani")
	assert.Contains(t, out, "Chocolate Brownie")
	assert.Contains(t, out, "Main Course")
	assert.Contains(t, out, "Drinks")
}

func TestShell_CheckoutFlow(t *testing.T) {
	sh := newTestShell(t)

	out := runScript(t, sh, strings.Join([]string{
		"add 1 2",
		"coupon TASTY20",
		"cart",
		"checkout cash",
		"Asha Rao",
		"asha@example.com",
		"9876543210",
		"12 Flavor Street, Foodville",
		"cart",
		"orders",
		"exit",
	}, "\n")+"\n")

	assert.Contains(t, out, "added 2 x Butter Chicken")
	assert.Contains(t, out, "applied TASTY20 (20% off)")
	assert.Contains(t, out, "subtotal: Rs 700.00")
	assert.Contains(t, out, "total: Rs 560.00")
	assert.Contains(t, out, "Rs 560.00, Cash on Delivery")
	// The cart is empty again after checkout.
	assert.Contains(t, out, "cart is empty")
	assert.Contains(t, out, "Cash on Delivery")
}

func TestShell_CheckoutValidation(t *testing.T) {
	sh := newTestShell(t)

	out := runScript(t, sh, strings.Join([]string{
		"add 1",
		"checkout upi",
		"", // name
		"not-an-email",
		"123",
		"", // address
		"exit",
	}, "\n")+"\n")

	assert.Contains(t, out, "Name is required")
	assert.Contains(t, out, "Valid email is required")
	assert.Contains(t, out, "Valid 10-digit phone number is required")
	assert.Contains(t, out, "Delivery address is required")
}

func TestShell_CheckoutEmptyCart(t *testing.T) {
	sh := newTestShell(t)

	out := runScript(t, sh, strings.Join([]string{
		"checkout cash",
		"Asha Rao",
		"asha@example.com",
		"9876543210",
		"12 Flavor Street",
		"exit",
	}, "\n")+"\n")

	assert.Contains(t, out, "cart is empty")
}

func TestShell_InvalidCoupon(t *testing.T) {
	sh := newTestShell(t)

	out := runScript(t, sh, "add 1\ncoupon BOGUS\nexit\n")
	assert.Contains(t, out, `invalid coupon code "BOGUS"`)
}

func TestShell_Rate(t *testing.T) {
	sh := newTestShell(t)

	out := runScript(t, sh, "rate 2 5 crispy and delicious\nexit\n")
	assert.Contains(t, out, "Paneer Tikka now rated 5.0 across 1 ratings")
}

func TestShell_InvoiceForOrder(t *testing.T) {
	sh := newTestShell(t)

	out := runScript(t, sh, strings.Join([]string{
		"add 1",
		"checkout upi",
		"Asha Rao",
		"asha@example.com",
		"9876543210",
		"12 Flavor Street",
		"orders",
		"exit",
	}, "\n")+"\n")

	// Pull the order id out of the confirmation line.
	idx := strings.Index(out, "order TF-")
	require.GreaterOrEqual(t, idx, 0)
	id := strings.Fields(out[idx:])[1]

	out = runScript(t, sh, "invoice "+id+"\nexit\n")
	assert.Contains(t, out, "invoice written to")

	path := filepath.Join(sh.cfg.InvoiceDir, id+".pdf")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestShell_UnknownCommand(t *testing.T) {
	sh := newTestShell(t)

	out := runScript(t, sh, "frobnicate\nexit\n")
	assert.Contains(t, out, `unknown command "frobnicate"`)
}

package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/tastyflame/internal/domain/coupon"
)

// --- Mock implementations ---

type mockRepo struct {
	items  []Item
	coupon *coupon.Coupon
}

func (m *mockRepo) Items(_ context.Context) ([]Item, error) {
	return append([]Item(nil), m.items...), nil
}

func (m *mockRepo) SaveItems(_ context.Context, items []Item) error {
	m.items = append([]Item(nil), items...)
	return nil
}

func (m *mockRepo) AppliedCoupon(_ context.Context) (*coupon.Coupon, error) {
	if m.coupon == nil {
		return nil, nil
	}
	c := *m.coupon
	return &c, nil
}

func (m *mockRepo) SaveAppliedCoupon(_ context.Context, c coupon.Coupon) error {
	m.coupon = &c
	return nil
}

func (m *mockRepo) DeleteAppliedCoupon(_ context.Context) error {
	m.coupon = nil
	return nil
}

// --- Helpers ---

func newTestStore(items ...Item) (*Store, *mockRepo) {
	repo := &mockRepo{items: items}
	return NewStore(repo, coupon.Builtin()), repo
}

func newTestItem(id int, name string, price int64, qty int) Item {
	return Item{ID: id, Name: name, Price: decimal.NewFromInt(price), Quantity: qty}
}

// --- Tests ---

func TestAdd_NewLine(t *testing.T) {
	store, repo := newTestStore()

	err := store.Add(context.Background(), newTestItem(1, "Butter Chicken", 350, 2))
	require.NoError(t, err)

	require.Len(t, repo.items, 1)
	assert.Equal(t, 2, repo.items[0].Quantity)
}

func TestAdd_MergesExistingLine(t *testing.T) {
	store, repo := newTestStore(newTestItem(1, "Butter Chicken", 350, 1))

	err := store.Add(context.Background(), newTestItem(1, "Butter Chicken", 350, 2))
	require.NoError(t, err)

	require.Len(t, repo.items, 1)
	assert.Equal(t, 3, repo.items[0].Quantity)
}

func TestAdd_IgnoresMalformedLines(t *testing.T) {
	store, repo := newTestStore()

	require.NoError(t, store.Add(context.Background(), newTestItem(0, "No ID", 100, 1)))
	require.NoError(t, store.Add(context.Background(), newTestItem(-1, "Bad ID", 100, 1)))
	require.NoError(t, store.Add(context.Background(), newTestItem(1, "Zero Qty", 100, 0)))
	require.NoError(t, store.Add(context.Background(), newTestItem(1, "Negative Qty", 100, -3)))

	assert.Empty(t, repo.items)
}

func TestUpdateQuantity_Sets(t *testing.T) {
	store, repo := newTestStore(newTestItem(1, "Paneer Tikka", 250, 1))

	err := store.UpdateQuantity(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, repo.items[0].Quantity)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	store, repo := newTestStore(
		newTestItem(1, "Paneer Tikka", 250, 1),
		newTestItem(2, "Veg Biryani", 300, 2),
	)

	require.NoError(t, store.UpdateQuantity(context.Background(), 1, 0))
	require.Len(t, repo.items, 1)
	assert.Equal(t, 2, repo.items[0].ID)

	require.NoError(t, store.UpdateQuantity(context.Background(), 2, -1))
	assert.Empty(t, repo.items)
}

func TestUpdateQuantity_UnknownIDNoop(t *testing.T) {
	store, repo := newTestStore(newTestItem(1, "Paneer Tikka", 250, 1))

	require.NoError(t, store.UpdateQuantity(context.Background(), 99, 5))

	require.Len(t, repo.items, 1)
	assert.Equal(t, 1, repo.items[0].Quantity)
}

func TestRemove(t *testing.T) {
	store, repo := newTestStore(
		newTestItem(1, "Paneer Tikka", 250, 1),
		newTestItem(2, "Veg Biryani", 300, 2),
	)

	require.NoError(t, store.Remove(context.Background(), 1))
	require.Len(t, repo.items, 1)
	assert.Equal(t, 2, repo.items[0].ID)

	// Unknown id is a no-op.
	require.NoError(t, store.Remove(context.Background(), 99))
	assert.Len(t, repo.items, 1)
}

func TestClear_KeepsCoupon(t *testing.T) {
	store, repo := newTestStore(newTestItem(1, "Paneer Tikka", 250, 1))

	_, err := store.ApplyCoupon(context.Background(), "TASTY20")
	require.NoError(t, err)

	require.NoError(t, store.Clear(context.Background()))

	assert.Empty(t, repo.items)

	applied, err := store.AppliedCoupon(context.Background())
	require.NoError(t, err)
	require.NotNil(t, applied)
	assert.Equal(t, "TASTY20", applied.Code)
}

func TestApplyCoupon_ReplacesPrevious(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.ApplyCoupon(context.Background(), "WELCOME10")
	require.NoError(t, err)

	c, err := store.ApplyCoupon(context.Background(), "FLAME15")
	require.NoError(t, err)
	assert.Equal(t, "FLAME15", c.Code)

	applied, err := store.AppliedCoupon(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FLAME15", applied.Code)
}

func TestApplyCoupon_UnknownCodeKeepsPrior(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.ApplyCoupon(context.Background(), "WELCOME10")
	require.NoError(t, err)

	_, err = store.ApplyCoupon(context.Background(), "BOGUS")
	require.ErrorIs(t, err, coupon.ErrNotFound)

	applied, err := store.AppliedCoupon(context.Background())
	require.NoError(t, err)
	require.NotNil(t, applied)
	assert.Equal(t, "WELCOME10", applied.Code)
}

func TestRemoveCoupon_Idempotent(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.ApplyCoupon(context.Background(), "WELCOME10")
	require.NoError(t, err)

	require.NoError(t, store.RemoveCoupon(context.Background()))
	require.NoError(t, store.RemoveCoupon(context.Background()))

	applied, err := store.AppliedCoupon(context.Background())
	require.NoError(t, err)
	assert.Nil(t, applied)
}

func TestTotals_NoCoupon(t *testing.T) {
	store, _ := newTestStore(
		newTestItem(1, "Butter Chicken", 350, 2),
		newTestItem(2, "Chocolate Cake", 150, 1),
	)

	totals, err := store.Totals(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(850).Equal(totals.Subtotal))
	assert.True(t, decimal.Zero.Equal(totals.Discount))
	assert.True(t, totals.Subtotal.Equal(totals.Total))
}

func TestTotals_WithCoupon(t *testing.T) {
	store, _ := newTestStore(newTestItem(1, "Feast", 500, 1))

	_, err := store.ApplyCoupon(context.Background(), "TASTY20")
	require.NoError(t, err)

	totals, err := store.Totals(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(500).Equal(totals.Subtotal))
	assert.True(t, decimal.NewFromInt(100).Equal(totals.Discount))
	assert.True(t, decimal.NewFromInt(400).Equal(totals.Total))
}

func TestTotals_Idempotent(t *testing.T) {
	store, _ := newTestStore(newTestItem(1, "Feast", 500, 3))

	_, err := store.ApplyCoupon(context.Background(), "WELCOME10")
	require.NoError(t, err)

	first, err := store.Totals(context.Background())
	require.NoError(t, err)

	for range 5 {
		again, err := store.Totals(context.Background())
		require.NoError(t, err)
		assert.True(t, first.Subtotal.Equal(again.Subtotal))
		assert.True(t, first.Discount.Equal(again.Discount))
		assert.True(t, first.Total.Equal(again.Total))
	}
}

func TestTotals_EmptyCart(t *testing.T) {
	store, _ := newTestStore()

	totals, err := store.Totals(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.Zero.Equal(totals.Subtotal))
	assert.True(t, decimal.Zero.Equal(totals.Discount))
	assert.True(t, decimal.Zero.Equal(totals.Total))
}

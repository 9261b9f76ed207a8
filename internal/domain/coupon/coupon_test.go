package coupon

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_KnownCodes(t *testing.T) {
	reg := Builtin()

	tests := []struct {
		code    string
		percent int64
	}{
		{"WELCOME10", 10},
		{"TASTY20", 20},
		{"FLAME15", 15},
	}
	for _, tt := range tests {
		c, err := reg.Find(context.Background(), tt.code)
		require.NoError(t, err, tt.code)
		assert.Equal(t, tt.code, c.Code)
		assert.True(t, decimal.NewFromInt(tt.percent).Equal(c.DiscountPercentage))
	}
}

func TestFind_UnknownCode(t *testing.T) {
	reg := Builtin()

	_, err := reg.Find(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFind_CaseSensitive(t *testing.T) {
	reg := Builtin()

	_, err := reg.Find(context.Background(), "welcome10")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = reg.Find(context.Background(), "Tasty20")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDiscount(t *testing.T) {
	pct := func(v int64) *Coupon {
		return &Coupon{Code: "X", DiscountPercentage: decimal.NewFromInt(v)}
	}

	tests := []struct {
		name     string
		coupon   *Coupon
		subtotal string
		want     string
	}{
		{"nil coupon", nil, "100", "0"},
		{"ten percent", pct(10), "100", "10"},
		{"twenty percent of 500", pct(20), "500", "100"},
		{"fifteen percent rounds", pct(15), "99.99", "15.00"},
		{"zero subtotal", pct(20), "0", "0"},
		{"over hundred percent clamps to subtotal", pct(150), "80", "80"},
		{"negative percentage floors at zero", pct(-10), "100", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(tt.coupon, decimal.RequireFromString(tt.subtotal))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"got %s, want %s", got, tt.want)
		})
	}
}

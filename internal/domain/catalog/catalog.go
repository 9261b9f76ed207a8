// Package catalog holds the restaurant menu: dishes, category filtering,
// search, and per-dish customer ratings.
package catalog

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a menu item id does not exist.
	ErrNotFound = errors.New("menu item not found")
	// ErrInvalidRating is returned for star values outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Rating is one customer's review of a dish.
type Rating struct {
	UserID   string
	Username string
	Rating   int
	Review   string
	Date     time.Time
}

// MenuItem is a dish on the menu.
type MenuItem struct {
	ID            int
	Name          string
	Category      string
	Price         decimal.Decimal
	Description   string
	Image         string
	Ratings       []Rating
	AverageRating float64
}

// Repository persists the menu and its data version. The version lets new
// builds overwrite a stale stored menu (see Seed). A store with no menu
// yields an empty slice and an empty version, not an error.
type Repository interface {
	Items(ctx context.Context) ([]MenuItem, error)
	SaveItems(ctx context.Context, items []MenuItem) error
	Version(ctx context.Context) (string, error)
	SaveVersion(ctx context.Context, version string) error
}

package repository

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/tastyflame/internal/domain/catalog"
	"github.com/xenking/tastyflame/internal/storage"
)

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogRepository persists the menu under "menuItems" and its data version
// under "menuDataVersion".
type CatalogRepository struct {
	kv storage.KV
}

// NewCatalogRepository returns a CatalogRepository over the given store.
func NewCatalogRepository(kv storage.KV) *CatalogRepository {
	return &CatalogRepository{kv: kv}
}

type ratingRecord struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	Rating   int       `json:"rating"`
	Review   string    `json:"review"`
	Date     time.Time `json:"date"`
}

type menuItemRecord struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	Ratings       []ratingRecord  `json:"ratings"`
	AverageRating float64         `json:"averageRating"`
}

// Items returns the stored menu; a store without one yields an empty menu.
func (r *CatalogRepository) Items(ctx context.Context) ([]catalog.MenuItem, error) {
	var records []menuItemRecord
	if _, err := getJSON(ctx, r.kv, storage.KeyMenuItems, &records); err != nil {
		return nil, errors.Wrap(err, "load menu")
	}

	items := make([]catalog.MenuItem, len(records))
	for i, rec := range records {
		ratings := make([]catalog.Rating, len(rec.Ratings))
		for j, rr := range rec.Ratings {
			ratings[j] = catalog.Rating{
				UserID:   rr.UserID,
				Username: rr.Username,
				Rating:   rr.Rating,
				Review:   rr.Review,
				Date:     rr.Date,
			}
		}
		items[i] = catalog.MenuItem{
			ID:            rec.ID,
			Name:          rec.Name,
			Category:      rec.Category,
			Price:         rec.Price,
			Description:   rec.Description,
			Image:         rec.Image,
			Ratings:       ratings,
			AverageRating: rec.AverageRating,
		}
	}
	return items, nil
}

// SaveItems stores the menu, replacing the previous contents.
func (r *CatalogRepository) SaveItems(ctx context.Context, items []catalog.MenuItem) error {
	records := make([]menuItemRecord, len(items))
	for i, item := range items {
		ratings := make([]ratingRecord, len(item.Ratings))
		for j, rr := range item.Ratings {
			ratings[j] = ratingRecord{
				UserID:   rr.UserID,
				Username: rr.Username,
				Rating:   rr.Rating,
				Review:   rr.Review,
				Date:     rr.Date,
			}
		}
		records[i] = menuItemRecord{
			ID:            item.ID,
			Name:          item.Name,
			Category:      item.Category,
			Price:         item.Price,
			Description:   item.Description,
			Image:         item.Image,
			Ratings:       ratings,
			AverageRating: item.AverageRating,
		}
	}
	return errors.Wrap(setJSON(ctx, r.kv, storage.KeyMenuItems, records), "save menu")
}

// Version returns the stored menu data version, or "" when unset.
func (r *CatalogRepository) Version(ctx context.Context) (string, error) {
	var version string
	if _, err := getJSON(ctx, r.kv, storage.KeyMenuVersion, &version); err != nil {
		return "", errors.Wrap(err, "load menu version")
	}
	return version, nil
}

// SaveVersion stores the menu data version.
func (r *CatalogRepository) SaveVersion(ctx context.Context, version string) error {
	return errors.Wrap(
		setJSON(ctx, r.kv, storage.KeyMenuVersion, version),
		"save menu version",
	)
}

package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// SeedVersion tags the builtin menu data. Bump it whenever SeedItems
// changes so stores carrying an older menu get refreshed on next seed.
const SeedVersion = "2"

// SeedItems returns the menu the storefront ships with.
func SeedItems() []MenuItem {
	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

	return []MenuItem{
		{ID: 1, Name: "Butter Chicken", Category: "Main Course", Price: price(350),
			Description: "Tender chicken cooked in a rich buttery tomato sauce with aromatic spices.",
			Image:       "images/dish1.jpg"},
		{ID: 2, Name: "Paneer Tikka", Category: "Starters", Price: price(250),
			Description: "Chunks of paneer marinated in spices and grilled to perfection.",
			Image:       "images/dish2.jpg"},
		{ID: 3, Name: "Veg Biryani", Category: "Main Course", Price: price(300),
			Description: "Fragrant basmati rice cooked with mixed vegetables and aromatic spices.",
			Image:       "images/dish3.jpg"},
		{ID: 4, Name: "Chocolate Cake", Category: "Desserts", Price: price(150),
			Description: "Decadent chocolate cake layered and topped with rich ganache.",
			Image:       "images/dish4.jpg"},
		{ID: 5, Name: "Cocktail", Category: "Drinks", Price: price(120),
			Description: "Refreshing beverages served chilled - from mocktails to signature drinks.",
			Image:       "images/dish5.jpg"},
		{ID: 6, Name: "Chicken Biryani", Category: "Main Course", Price: price(380),
			Description: "Aromatic basmati rice cooked with tender chicken pieces and authentic spices.",
			Image:       "images/dish6.jpg"},
		{ID: 7, Name: "South Indian Thali", Category: "Main Course", Price: price(200),
			Description: "Authentic flavorful South Indian Thali with seasonal curries and rice.",
			Image:       "images/dish7.jpg"},
		{ID: 8, Name: "Chocolate Brownie", Category: "Desserts", Price: price(180),
			Description: "Rich chocolate brownie with a gooey center, served with vanilla ice cream.",
			Image:       "images/dish8.jpg"},
	}
}

// Seed writes the builtin menu into the repository when the store holds no
// menu yet or carries a different data version. A store already on
// SeedVersion is left alone, preserving accumulated ratings.
func Seed(ctx context.Context, repo Repository) error {
	version, err := repo.Version(ctx)
	if err != nil {
		return errors.Wrap(err, "load menu version")
	}
	items, err := repo.Items(ctx)
	if err != nil {
		return errors.Wrap(err, "load menu")
	}

	if version == SeedVersion && len(items) > 0 {
		return nil
	}

	if err := repo.SaveItems(ctx, SeedItems()); err != nil {
		return errors.Wrap(err, "save menu")
	}
	return errors.Wrap(repo.SaveVersion(ctx, SeedVersion), "save menu version")
}

package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/tastyflame/internal/domain/user"
)

// Service exposes menu queries and the rating flow.
type Service struct {
	repo  Repository
	users user.Repository

	now func() time.Time
}

// NewService creates a catalog Service.
func NewService(repo Repository, users user.Repository) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now:   time.Now,
	}
}

// List returns all menu items.
func (s *Service) List(ctx context.Context) ([]MenuItem, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load menu")
	}
	return items, nil
}

// ItemByID returns the menu item with the given id, or ErrNotFound.
func (s *Service) ItemByID(ctx context.Context, id int) (*MenuItem, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load menu")
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

// FilterByCategory returns the items in the given category. The pseudo
// category "all" passes everything through.
func (s *Service) FilterByCategory(ctx context.Context, category string) ([]MenuItem, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load menu")
	}
	if category == "all" {
		return items, nil
	}

	var matched []MenuItem
	for _, item := range items {
		if item.Category == category {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Search returns items whose name or description contains the query,
// case-insensitively.
func (s *Service) Search(ctx context.Context, query string) ([]MenuItem, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load menu")
	}

	q := strings.ToLower(query)
	var matched []MenuItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Description), q) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Categories returns the distinct categories in menu order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load menu")
	}

	seen := make(map[string]struct{}, len(items))
	var categories []string
	for _, item := range items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories, nil
}

// Rate records a 1..5 star rating (with an optional review) for a dish on
// behalf of the current user and recomputes the dish's average. It fails
// with user.ErrNotSignedIn when nobody is signed in.
func (s *Service) Rate(ctx context.Context, itemID, stars int, review string) (*MenuItem, error) {
	if stars < 1 || stars > 5 {
		return nil, ErrInvalidRating
	}

	u, err := s.users.Current(ctx)
	if err != nil {
		if errors.Is(err, user.ErrNotSignedIn) {
			return nil, user.ErrNotSignedIn
		}
		return nil, errors.Wrap(err, "load current user")
	}

	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load menu")
	}

	idx := -1
	for i := range items {
		if items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	items[idx].Ratings = append(items[idx].Ratings, Rating{
		UserID:   u.ID,
		Username: u.Username,
		Rating:   stars,
		Review:   review,
		Date:     s.now(),
	})
	items[idx].AverageRating = averageRating(items[idx].Ratings)

	if err := s.repo.SaveItems(ctx, items); err != nil {
		return nil, errors.Wrap(err, "save menu")
	}
	return &items[idx], nil
}

func averageRating(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}

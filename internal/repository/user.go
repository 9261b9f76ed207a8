package repository

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/xenking/tastyflame/internal/domain/user"
	"github.com/xenking/tastyflame/internal/storage"
)

var _ user.Repository = (*UserRepository)(nil)

// UserRepository reads the signed-in user from "currentUser". Writing is
// exposed only for the seed tool; the storefront itself never signs anyone
// in or out.
type UserRepository struct {
	kv storage.KV
}

// NewUserRepository returns a UserRepository over the given store.
func NewUserRepository(kv storage.KV) *UserRepository {
	return &UserRepository{kv: kv}
}

type userRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Current returns the signed-in user, or user.ErrNotSignedIn.
func (r *UserRepository) Current(ctx context.Context) (*user.User, error) {
	var rec userRecord
	found, err := getJSON(ctx, r.kv, storage.KeyCurrentUser, &rec)
	if err != nil {
		return nil, errors.Wrap(err, "load current user")
	}
	if !found {
		return nil, user.ErrNotSignedIn
	}
	return &user.User{ID: rec.ID, Username: rec.Username}, nil
}

// SetCurrent stores u as the signed-in user.
func (r *UserRepository) SetCurrent(ctx context.Context, u user.User) error {
	rec := userRecord{ID: u.ID, Username: u.Username}
	return errors.Wrap(
		setJSON(ctx, r.kv, storage.KeyCurrentUser, rec),
		"save current user",
	)
}

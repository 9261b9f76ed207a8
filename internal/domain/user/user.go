// Package user exposes the signed-in user read port. Authentication itself
// is an external concern; the core only reads whoever the store says is
// signed in, for rating attribution.
package user

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotSignedIn is returned when no current user is present in the store.
var ErrNotSignedIn = errors.New("no user signed in")

// User is the minimal shape the storefront needs.
type User struct {
	ID       string
	Username string
}

// Repository reads the current user.
type Repository interface {
	Current(ctx context.Context) (*User, error)
}

// Package storage defines the persisted key-value port the storefront core
// is built on. The original site keeps everything in the browser's
// localStorage; here the store is an injected collaborator so repositories
// can run against an in-memory fake, a JSON file, or PostgreSQL.
package storage

import (
	"context"

	"github.com/go-faster/errors"
)

// Key identifies a record in the persisted store.
type Key string

// Well-known keys. The names match the original localStorage entries so a
// dump of either store describes the same data.
const (
	KeyCart          Key = "cart"
	KeyAppliedCoupon Key = "appliedCoupon"
	KeyOrders        Key = "orders"
	KeyCurrentUser   Key = "currentUser"
	KeyMenuItems     Key = "menuItems"
	KeyMenuVersion   Key = "menuDataVersion"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// KV is the persisted key-value port. Values are opaque documents; any
// lossless encoding suffices, and the repositories in this module use JSON.
//
// The storefront runs a single synchronous execution context, so callers may
// read-modify-write without coordination. Deployments sharing one store
// between processes must lift that pattern into a transaction; see the
// postgres implementation's notes.
type KV interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte) error
	Delete(ctx context.Context, key Key) error
}

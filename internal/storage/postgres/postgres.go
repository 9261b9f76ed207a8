// Package postgres provides a storage.KV backed by a PostgreSQL jsonb
// table, for deployments that want the storefront state in a real database
// instead of a local file.
package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/tastyflame/db"
	"github.com/xenking/tastyflame/internal/storage"
)

// NewPool creates a pgxpool.Pool for the given connection URL.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse database config")
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "create connection pool")
	}
	return pool, nil
}

// RunMigrations executes the embedded DDL schema against the pool.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, db.Schema); err != nil {
		return errors.Wrap(err, "run migrations")
	}
	return nil
}

var _ storage.KV = (*Store)(nil)

// Store implements storage.KV over the store_entries table.
//
// Each Get/Set/Delete is individually atomic, which matches the single
// execution context the storefront core assumes. Multiple processes writing
// the same key concurrently would race at the read-modify-write layer above
// this store; such deployments need to lift that pattern into a transaction
// (SELECT ... FOR UPDATE) before fanning out.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store using the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Get returns the value for key, or storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, key storage.Key) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM store_entries WHERE key = $1`,
		string(key),
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get %q", key)
	}
	return value, nil
}

// Set upserts value under key.
func (s *Store) Set(ctx context.Context, key storage.Key, value []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO store_entries (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE
		 SET value = EXCLUDED.value, updated_at = now()`,
		string(key), value,
	)
	return errors.Wrapf(err, "set %q", key)
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key storage.Key) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM store_entries WHERE key = $1`,
		string(key),
	)
	return errors.Wrapf(err, "delete %q", key)
}

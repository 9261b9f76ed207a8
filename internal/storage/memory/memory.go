// Package memory provides an in-memory storage.KV, used by tests and the
// throwaway demo backend.
package memory

import (
	"context"
	"sync"

	"github.com/xenking/tastyflame/internal/storage"
)

var _ storage.KV = (*Store)(nil)

// Store is a map-backed KV. Values are copied on the way in and out so
// callers cannot alias the stored bytes.
type Store struct {
	mu sync.RWMutex
	m  map[storage.Key][]byte
}

// New creates an empty Store.
func New() *Store {
	return &Store{m: make(map[storage.Key][]byte)}
}

// Get returns the value for key, or storage.ErrNotFound.
func (s *Store) Get(_ context.Context, key storage.Key) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.m[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(_ context.Context, key storage.Key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(_ context.Context, key storage.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, key)
	return nil
}

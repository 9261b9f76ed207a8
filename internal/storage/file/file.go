// Package file provides a storage.KV persisted as a single JSON document on
// disk, the closest analog to the original site's localStorage: one flat
// namespace of string keys holding JSON values.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"

	"github.com/xenking/tastyflame/internal/storage"
)

var _ storage.KV = (*Store)(nil)

// Store keeps the whole namespace in memory and rewrites the file on every
// mutation via a temp-file rename, so a crash mid-write leaves the previous
// document intact.
type Store struct {
	path string

	mu sync.Mutex
	m  map[storage.Key]json.RawMessage
}

// Open loads the store at path, creating an empty one when the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		m:    make(map[storage.Key]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, errors.Wrapf(err, "read store %s", path)
	}

	if err := json.Unmarshal(data, &s.m); err != nil {
		return nil, errors.Wrapf(err, "parse store %s", path)
	}
	return s, nil
}

// Get returns the value for key, or storage.ErrNotFound.
func (s *Store) Get(_ context.Context, key storage.Key) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.m[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores value under key and persists the document.
func (s *Store) Set(_ context.Context, key storage.Key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[key] = append(json.RawMessage(nil), value...)
	return s.persist()
}

// Delete removes key and persists the document. Absent keys are a no-op,
// but the document is still rewritten.
func (s *Store) Delete(_ context.Context, key storage.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, key)
	return s.persist()
}

// persist writes the document to a sibling temp file and renames it over
// the store path. Callers must hold mu.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode store")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp store")
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "write temp store")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "close temp store")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "replace store %s", s.path)
	}
	return nil
}

// Package repository implements the domain repositories over the persisted
// key-value port. Records are encoded as JSON documents whose field names
// match the original storefront's localStorage records, so a dump from
// either store reads the same.
package repository

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/xenking/tastyflame/internal/storage"
)

// getJSON decodes the value at key into v. It reports found=false (and does
// not touch v) when the key is absent.
func getJSON(ctx context.Context, kv storage.KV, key storage.Key, v any) (found bool, err error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "decode %q", key)
	}
	return true, nil
}

// setJSON encodes v and stores it at key.
func setJSON(ctx context.Context, kv storage.KV, key storage.Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %q", key)
	}
	return kv.Set(ctx, key, data)
}

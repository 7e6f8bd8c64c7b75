package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection keys.
const (
	ProductsKey = "products"
	OrdersKey   = "orders"
)

var ErrKeyNotFound = errors.New("snapshot key not found")

// Store persists whole serialized collections under string keys.
// Every write replaces the previous value of the key; there is no versioning,
// so the last writer wins.
type Store interface {
	// Get returns the raw snapshot stored under key or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the snapshot stored under key
	Set(ctx context.Context, key string, value []byte) error

	Close() error
}

// LoadJSON decodes the snapshot under key into dst.
// found is false, with a nil error, when the key is absent.
func LoadJSON(ctx context.Context, s Store, key string, dst any) (found bool, err error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("unmarshal %s snapshot failed: %w", key, err)
	}
	return true, nil
}

// SaveJSON serializes v and stores it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot failed: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

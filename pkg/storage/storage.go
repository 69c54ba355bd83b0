package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a string-keyed slot store. Each key holds one opaque value that
// is always read and overwritten as a whole.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

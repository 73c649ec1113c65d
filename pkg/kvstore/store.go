package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a key has never been written or was removed.
var ErrKeyNotFound = errors.New("kvstore: key not found")

// Store is a durable mapping from string keys to either a single string or
// an ordered list of strings. Set and SetList overwrite the full key; there
// is no partial update. Implementations initialise lazily on first use and
// initialisation is idempotent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	GetList(ctx context.Context, key string) ([]string, error)
	Set(ctx context.Context, key, value string) error
	SetList(ctx context.Context, key string, values []string) error
	Remove(ctx context.Context, key string) error
}

// IsNotFound reports whether err indicates an absent key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

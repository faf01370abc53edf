// Package store persists records encoded by a cstruct.Struct through an
// adapter.
package store

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

type (
	// UpdateFunc receives the stored value, nil when absent, and returns the
	// value to store.
	UpdateFunc func(ctx context.Context, current any) (any, error)

	Store interface {
		// Encode value and store it under key. A ttl of zero or less falls
		// back to the store TTL.
		Save(ctx context.Context, key any, value any, ttl time.Duration) error

		// Load and decode the value under key.
		// Errors wrap adapter.ErrNotFound when the key is absent.
		Load(ctx context.Context, key any) (any, error)

		// Same as Load, binding the value into out, a pointer.
		LoadInto(ctx context.Context, key any, out any) error

		Exists(ctx context.Context, key any) (bool, error)

		Delete(ctx context.Context, key any) error

		// Read, modify and write the value under key while holding its lock.
		Update(ctx context.Context, key any, ttl time.Duration, fn UpdateFunc) (any, error)
	}

	// Keyable values provide their own record key.
	Keyable interface {
		Key() (string, error)
	}

	KeyableMap map[string]any
)

// Key hashes the msgpack form of the map, whose keys are encoded sorted.
func (m KeyableMap) Key() (string, error) {
	hash := sha1.New()
	enc := msgpack.NewEncoder(hash)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(map[string]any(m)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

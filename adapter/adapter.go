// Package adapter abstracts the key/value backends encoded records are
// persisted to by the store package.
package adapter

import (
	"context"
	"time"
)

type Adapter interface {
	Exists(ctx context.Context, key string) (bool, error)

	// Get returns ErrNotFound for absent or expired keys.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores data under key. A zero ttl keeps the key until deleted.
	Set(ctx context.Context, key string, ttl time.Duration, data []byte) error

	Delete(ctx context.Context, key string) error

	// ObtainLock blocks until the lock named by key is held or ctx is done.
	ObtainLock(ctx context.Context, key string) (Lock, error)
}

type Lock interface {
	Release(ctx context.Context) error
}

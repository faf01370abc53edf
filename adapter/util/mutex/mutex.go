// Package mutex provides keyed locks for the adapters.
package mutex

import "context"

// Locker obtains the lock of one key, blocking until it is held or ctx is
// done.
type Locker interface {
	Obtain(ctx context.Context, key string) (Lock, error)
}

type Lock interface {
	Release(ctx context.Context) error
}

type Mutex interface {
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
}

// Factory makes the Mutex guarding key.
type Factory func(key string) Mutex

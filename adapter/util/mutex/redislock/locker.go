package redislock

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/pwnedgod/cstruct/adapter"
	"github.com/pwnedgod/cstruct/adapter/util/mutex"
)

const (
	DefaultLockTTL = 8 * time.Second
)

type redislockLocker struct {
	lc      *redislock.Client
	lockTTL time.Duration
	retry   redislock.RetryStrategy
}

func NewLocker(client redislock.RedisClient, lockTTL time.Duration) mutex.Locker {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &redislockLocker{
		lc:      redislock.New(client),
		lockTTL: lockTTL,
		retry:   redislock.LimitRetry(redislock.ExponentialBackoff(16*time.Millisecond, 4096*time.Millisecond), 32),
	}
}

func (lr redislockLocker) Obtain(ctx context.Context, key string) (mutex.Lock, error) {
	lock, err := lr.lc.Obtain(ctx, key, lr.lockTTL, &redislock.Options{
		RetryStrategy: lr.retry,
	})
	if err != nil {
		return nil, adapter.ErrFailedLock
	}
	return &redislockLock{lock: lock}, nil
}

type redislockLock struct {
	lock *redislock.Lock
}

func (l redislockLock) Release(ctx context.Context) error {
	// An expired lock has nothing left to release.
	if err := l.lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return adapter.ErrFailedUnlock
	}
	return nil
}

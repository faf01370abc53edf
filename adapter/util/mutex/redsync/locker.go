package redsync

import (
	"context"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis"
	"github.com/pwnedgod/cstruct/adapter"
	"github.com/pwnedgod/cstruct/adapter/util/mutex"
)

type redsyncLocker struct {
	rs   *redsync.Redsync
	opts []redsync.Option
}

// NewLocker obtains redlock mutexes across pools. opts apply to every mutex.
func NewLocker(pools []redis.Pool, opts ...redsync.Option) mutex.Locker {
	return &redsyncLocker{
		rs:   redsync.New(pools...),
		opts: opts,
	}
}

func (lr redsyncLocker) Obtain(ctx context.Context, key string) (mutex.Lock, error) {
	m := lr.rs.NewMutex(key, lr.opts...)

	if err := m.LockContext(ctx); err != nil {
		return nil, adapter.ErrFailedLock
	}

	return &redsyncLock{mutex: m}, nil
}

type redsyncLock struct {
	mutex *redsync.Mutex
}

func (l redsyncLock) Release(ctx context.Context) error {
	ok, err := l.mutex.UnlockContext(ctx)
	if err != nil || !ok {
		return adapter.ErrFailedUnlock
	}
	return nil
}

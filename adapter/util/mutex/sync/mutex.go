package sync

import (
	"context"

	"github.com/pwnedgod/cstruct/adapter/util/mutex"
)

// NewMutex is a mutex.Factory of process-local mutexes whose Lock can be
// abandoned through its context.
func NewMutex(string) mutex.Mutex {
	return chanMutex(make(chan struct{}, 1))
}

type chanMutex chan struct{}

func (m chanMutex) Lock(ctx context.Context) error {
	select {
	case m <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m chanMutex) Unlock(context.Context) error {
	select {
	case <-m:
		return nil
	default:
		panic("unlock of unlocked mutex")
	}
}

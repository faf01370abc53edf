package memory

import (
	"bytes"
	"context"
	"time"

	"github.com/karlseguin/ccache/v2"
	"github.com/pwnedgod/cstruct/adapter"
	"github.com/pwnedgod/cstruct/adapter/util/mutex"
	"github.com/pwnedgod/cstruct/adapter/util/mutex/sync"
)

// noExpiry stands in for a zero ttl, which ccache would expire immediately.
const noExpiry = 100 * 365 * 24 * time.Hour

var _ adapter.Adapter = (*Adapter)(nil)

type Adapter struct {
	cache  *ccache.Cache
	locker mutex.Locker
}

// NewAdapter keeps records in process memory. Stop releases the cache worker
// once the adapter is no longer used.
func NewAdapter() *Adapter {
	return NewAdapterWithConfiguration(ccache.Configure())
}

func NewAdapterWithConfiguration(cacheCfg *ccache.Configuration) *Adapter {
	return &Adapter{
		cache:  ccache.New(cacheCfg),
		locker: sync.NewLocker(),
	}
}

func (a *Adapter) Exists(ctx context.Context, key string) (bool, error) {
	item := a.cache.Get(key)
	return item != nil && !item.Expired(), nil
}

func (a *Adapter) Get(ctx context.Context, key string) ([]byte, error) {
	item := a.cache.Get(key)
	if item == nil || item.Expired() {
		return nil, adapter.ErrNotFound
	}

	return bytes.Clone(item.Value().([]byte)), nil
}

func (a *Adapter) Set(ctx context.Context, key string, ttl time.Duration, data []byte) error {
	if ttl <= 0 {
		ttl = noExpiry
	}
	a.cache.Set(key, bytes.Clone(data), ttl)
	return nil
}

func (a *Adapter) Delete(ctx context.Context, key string) error {
	a.cache.Delete(key)
	return nil
}

func (a *Adapter) ObtainLock(ctx context.Context, key string) (adapter.Lock, error) {
	return a.locker.Obtain(ctx, key)
}

func (a *Adapter) Stop() {
	a.cache.Stop()
}

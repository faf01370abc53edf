package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pwnedgod/cstruct"
	"github.com/pwnedgod/cstruct/adapter"
	"github.com/pwnedgod/cstruct/logger"
)

const (
	TTLDefault = time.Duration(10) * time.Minute
)

type (
	Option func(*defaultStore)

	defaultStore struct {
		name    string
		adapter adapter.Adapter
		st      cstruct.Struct
		logger  logger.Logger
		ttl     time.Duration
	}
)

func WithTTL(ttl time.Duration) Option {
	return func(s *defaultStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// New creates a store whose keys are prefixed by name.
func New(name string, a adapter.Adapter, st cstruct.Struct, l logger.Logger, opts ...Option) Store {
	s := &defaultStore{
		name:    name,
		adapter: a,
		st:      st,
		logger:  l,
		ttl:     TTLDefault,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s defaultStore) Save(ctx context.Context, kv any, value any, ttl time.Duration) error {
	key, err := s.getKey(kv)
	if err != nil {
		return err
	}
	return s.save(ctx, key, value, ttl)
}

func (s defaultStore) Load(ctx context.Context, kv any) (any, error) {
	key, err := s.getKey(kv)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, key, nil)
}

func (s defaultStore) LoadInto(ctx context.Context, kv any, out any) error {
	key, err := s.getKey(kv)
	if err != nil {
		return err
	}
	_, err = s.load(ctx, key, out)
	return err
}

func (s defaultStore) Exists(ctx context.Context, kv any) (bool, error) {
	key, err := s.getKey(kv)
	if err != nil {
		return false, err
	}
	ok, err := s.adapter.Exists(ctx, key)
	if err != nil {
		return false, newError(CategoryGet, "error while checking record", err)
	}
	return ok, nil
}

func (s defaultStore) Delete(ctx context.Context, kv any) error {
	key, err := s.getKey(kv)
	if err != nil {
		return err
	}
	if err := s.adapter.Delete(ctx, key); err != nil {
		return newError(CategoryDelete, "error while deleting record", err)
	}
	s.logger.Debug("deleted record", key)
	return nil
}

func (s defaultStore) Update(ctx context.Context, kv any, ttl time.Duration, fn UpdateFunc) (any, error) {
	key, err := s.getKey(kv)
	if err != nil {
		return nil, err
	}

	lockKey := "lock###" + key
	lock, err := s.adapter.ObtainLock(ctx, lockKey)
	if err != nil {
		return nil, newError(CategoryLock, "error while attempting to lock", err)
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			s.logger.Error("lock release failed", lockKey, err)
			return
		}
		s.logger.Debug("lock released", lockKey)
	}()
	s.logger.Debug("lock acquired", lockKey)

	current, err := s.load(ctx, key, nil)
	if err != nil {
		if !errors.Is(err, adapter.ErrNotFound) {
			return nil, err
		}
		current = nil
	}

	next, err := fn(ctx, current)
	if err != nil {
		return nil, newError(CategoryUpdate, "error while updating record", err)
	}
	if err := s.save(ctx, key, next, ttl); err != nil {
		return nil, err
	}
	return next, nil
}

func (s defaultStore) getKey(v any) (string, error) {
	key, err := makeKey(v)
	if err != nil {
		return "", newError(CategoryKey, "error while creating key", err)
	}

	// Prefix the key string with name.
	return s.name + "###" + key, nil
}

func (s defaultStore) load(ctx context.Context, key string, out any) (any, error) {
	data, err := s.adapter.Get(ctx, key)
	if err != nil {
		return nil, newError(CategoryGet, "error while getting record", err)
	}
	s.logger.Debug("get record", key, len(data))

	var res cstruct.ReadResult
	if out == nil {
		res, err = s.st.Read(data, 0)
	} else {
		res, err = s.st.ReadInto(data, 0, out)
	}
	if err != nil {
		return nil, newError(CategoryDecode, "error while decoding record", err)
	}
	return res.Value, nil
}

func (s defaultStore) save(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}

	res, err := s.st.Make(value)
	if err != nil {
		return newError(CategoryEncode, "error while encoding record", err)
	}
	if err := s.adapter.Set(ctx, key, ttl, res.Buffer); err != nil {
		return newError(CategorySet, "error while storing record", err)
	}
	s.logger.Debug("store record", key, res.Size)
	return nil
}

func makeKey(key any) (string, error) {
	if keyable, ok := key.(Keyable); ok {
		return keyable.Key()
	}

	// Naive way to obtain string from a value with an unknown type.
	return fmt.Sprintf("%v", key), nil
}

package mutex

import (
	"context"
	"sync"
)

// MultiMutex hands out one Mutex per key and forgets it once nobody holds or
// waits on it.
type MultiMutex struct {
	newMutex    Factory
	mutexes     map[string]Mutex
	mutexCounts map[string]int
	syncMutex   sync.Mutex
}

func NewMultiMutex(newMutex Factory) *MultiMutex {
	return &MultiMutex{
		newMutex:    newMutex,
		mutexes:     make(map[string]Mutex),
		mutexCounts: make(map[string]int),
	}
}

func (m *MultiMutex) Lock(ctx context.Context, key string) error {
	if err := m.acquire(key).Lock(ctx); err != nil {
		m.release(key)
		return err
	}
	return nil
}

func (m *MultiMutex) Unlock(ctx context.Context, key string) error {
	mutex := m.release(key)
	if mutex == nil {
		panic("attempting to unlock unset mutex: " + key)
	}
	return mutex.Unlock(ctx)
}

// Len is the number of keys currently tracked.
func (m *MultiMutex) Len() int {
	m.syncMutex.Lock()
	defer m.syncMutex.Unlock()
	return len(m.mutexes)
}

func (m *MultiMutex) acquire(key string) Mutex {
	m.syncMutex.Lock()
	defer m.syncMutex.Unlock()

	mutex, ok := m.mutexes[key]
	if !ok {
		mutex = m.newMutex(key)
		m.mutexes[key] = mutex
	}
	m.mutexCounts[key]++
	return mutex
}

func (m *MultiMutex) release(key string) Mutex {
	m.syncMutex.Lock()
	defer m.syncMutex.Unlock()

	mutex, ok := m.mutexes[key]
	if !ok {
		return nil
	}
	m.mutexCounts[key]--
	if m.mutexCounts[key] == 0 {
		delete(m.mutexes, key)
		delete(m.mutexCounts, key)
	}
	return mutex
}

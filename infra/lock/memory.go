// Package lock provides Locker implementations for a single process and for
// several processes sharing Redis.
package lock

import (
	"context"
	"sync"

	"github.com/homebanking/corebank/pkg/lock"
)

// KeyedMutex is an in-process Locker. Each key is a one-slot channel so that
// waiting honours context cancellation. A key's slot lives only while some
// caller holds or waits on it.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: map[string]*slot{}}
}

func (m *KeyedMutex) acquire(key string) *slot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		m.slots[key] = s
	}
	s.refs++
	return s
}

func (m *KeyedMutex) drop(key string, s *slot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(m.slots, key)
	}
}

// Lock implements lock.Locker.
func (m *KeyedMutex) Lock(ctx context.Context, keys ...string) (lock.Unlock, error) {
	sorted := lock.Keys(keys...)
	held := make([]*slot, 0, len(sorted))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i].ch
			m.drop(sorted[i], held[i])
		}
	}
	for _, key := range sorted {
		s := m.acquire(key)
		select {
		case s.ch <- struct{}{}:
			held = append(held, s)
		case <-ctx.Done():
			m.drop(key, s)
			release()
			return nil, ctx.Err()
		}
	}
	var once sync.Once
	return func() { once.Do(release) }, nil
}

// Len returns the number of keys currently held or waited on.
func (m *KeyedMutex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

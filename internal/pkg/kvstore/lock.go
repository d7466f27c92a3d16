package kvstore

import (
	"sort"
	"sync"
)

// KeyLock serializes read-modify-write sequences per key.
// Keys are always acquired in sorted order so that two mutations touching
// overlapping key sets cannot deadlock.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyLock creates an empty lock set
func NewKeyLock() *KeyLock {
	return &KeyLock{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until every key is held and returns the matching unlock function
func (l *KeyLock) Lock(keys ...string) (unlock func()) {
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, k := range sorted {
		m := l.get(k)
		m.Lock()
		held = append(held, m)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].Unlock()
			}
		})
	}
}

func (l *KeyLock) get(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

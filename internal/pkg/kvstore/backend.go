// Package kvstore holds whole JSON documents under string keys.
//
// A Store never reports storage failures to its callers. Reads of absent or
// unparsable values yield the caller's fallback and failed writes are logged
// and dropped, so the rest of the application sees "empty" rather than "broken".
package kvstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
)

// Backend is the raw byte storage behind a Store
type Backend interface {
	// Get returns the stored bytes and whether the key exists
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites the value stored under key
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}

// MemoryBackend keeps values in process memory.
// A positive quota caps the summed size of keys and values, like browser storage does.
type MemoryBackend struct {
	mu    sync.RWMutex
	data  map[string][]byte
	size  int
	quota int
}

// NewMemoryBackend creates an in-memory backend; quota <= 0 means unlimited
func NewMemoryBackend(quota int) *MemoryBackend {
	return &MemoryBackend{
		data:  make(map[string][]byte),
		quota: quota,
	}
}

// Get implements Backend
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set implements Backend
func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	newSize := m.size + len(value)
	if old, ok := m.data[key]; ok {
		newSize -= len(old)
	} else {
		newSize += len(key)
	}
	if m.quota > 0 && newSize > m.quota {
		return fmt.Errorf("%w: writing %q needs %d bytes, quota is %d", apperrors.ErrQuotaExceeded, key, newSize, m.quota)
	}

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	m.size = newSize
	return nil
}

// Delete implements Backend
func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.data[key]; ok {
		m.size -= len(key) + len(old)
		delete(m.data, key)
	}
	return nil
}

// Size returns the bytes currently counted against the quota
func (m *MemoryBackend) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}

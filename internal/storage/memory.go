package storage

import (
	"context"
	"slices"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	buckets map[string][]byte
}

// NewMemory keeps buckets in process. Contents are lost on restart.
func NewMemory() Store {
	return &memoryStore{buckets: map[string][]byte{}}
}

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.buckets[key]
	if !ok {
		return nil, nil
	}

	return slices.Clone(value), nil
}

func (m *memoryStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.buckets[key] = slices.Clone(value)

	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.buckets, key)

	return nil
}

package remote

import (
	"context"
	"fmt"
	"sync"
)

var _ Fetcher = &MemoryStore{}

// MemoryStore keeps objects in a map. It is safe for concurrent use.
type MemoryStore struct {
	lock    sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
	}
}

func (m *MemoryStore) Write(path string, data []byte) {
	m.lock.Lock()
	m.objects[path] = append([]byte{}, data...)
	m.lock.Unlock()
}

func (m *MemoryStore) Delete(path string) {
	m.lock.Lock()
	delete(m.objects, path)
	m.lock.Unlock()
}

func (m *MemoryStore) Read(_ context.Context, path string) ([]byte, error) {
	m.lock.RLock()
	data, ok := m.objects[path]
	m.lock.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDoesNotExist, path)
	}
	return append([]byte{}, data...), nil
}

package storage

import (
	"context"
	"io"
	"sync"
)

// MockStorage implements Storage in memory for unit tests.
type MockStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	Err     error
}

// NewMockStorage creates an empty in-memory store.
func NewMockStorage() *MockStorage {
	return &MockStorage{objects: make(map[string][]byte)}
}

// Save records the object bytes and returns a generated media path.
func (m *MockStorage) Save(_ context.Context, dir, filename, _ string, data io.Reader) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", ErrEmptyFile
	}
	object := MediaPath(dir, filename)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[object] = b
	return object, nil
}

// Object returns the stored bytes for path, if any.
func (m *MockStorage) Object(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[path]
	return b, ok
}

// Len reports the number of stored objects.
func (m *MockStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Compile-time interface check
var _ Storage = (*MockStorage)(nil)

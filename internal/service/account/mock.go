package account

import (
	"context"
	"sort"
	"sync"
)

// MockDirectory implements Directory in memory for unit tests.
type MockDirectory struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

// NewMockDirectory creates a directory seeded with the given accounts.
func NewMockDirectory(accounts ...*Account) *MockDirectory {
	m := &MockDirectory{accounts: make(map[string]*Account)}
	for _, a := range accounts {
		m.accounts[a.UID] = a
	}
	return m
}

// Add registers an account.
func (m *MockDirectory) Add(a *Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.UID] = a
}

func (m *MockDirectory) Get(_ context.Context, uid string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[uid]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *MockDirectory) GetByUsername(_ context.Context, username string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.Username == username {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockDirectory) List(_ context.Context) ([]*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		copied := *a
		accounts = append(accounts, &copied)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].DateJoined.Equal(accounts[j].DateJoined) {
			return accounts[i].UID < accounts[j].UID
		}
		return accounts[i].DateJoined.Before(accounts[j].DateJoined)
	})
	return accounts, nil
}

// Compile-time interface check
var _ Directory = (*MockDirectory)(nil)

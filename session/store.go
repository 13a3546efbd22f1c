// Package session persists the single bearer credential ("token") that every
// authenticated request to the leads backend carries.
package session

import "sync"

// TokenKey is the storage key the token lives under in every backend
const TokenKey = "token"

// Store wraps the session token.
// Get returns "" when no token is present. There is no expiry tracking:
// an expired token is discovered when the backend refuses a request.
type Store interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// MemoryStore keeps the token in process memory.
// The web front end gives every browser session its own MemoryStore.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) Set(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear() error {
	return m.Set("")
}

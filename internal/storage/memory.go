package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for development and tests
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// Read returns the stored value for key, reporting ok=false when absent
func (s *MemoryStore) Read(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// Write stores value under key
func (s *MemoryStore) Write(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Ping always succeeds for the in-memory store
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op
func (s *MemoryStore) Close() {}

// Package memory provides an in-memory option store for tests and
// examples where no host platform supplies one.
package memory

import (
	"context"
	"sync"
)

// Store is an in-memory implementation of options.Store. It is safe for
// concurrent use.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty in-memory option store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value for name and whether it was present.
func (s *Store) Get(ctx context.Context, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[name]
	return value, ok, nil
}

// Set writes the value for name, creating it if absent.
func (s *Store) Set(ctx context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[name] = value
	return nil
}

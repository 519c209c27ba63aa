package answers

import (
	"sync"
)

// Store is the typed side-channel data providers publish into. It maps a
// string data key to an opaque value; the generic Key accessors restore the
// type at the edges. Writes are whole-value publishes, reads return the
// stored value as-is, so writers must never mutate a value after Set.
type Store struct {
	mu       sync.RWMutex
	values   map[string]interface{}
	failures map[string]error
}

// NewStore creates an empty side-channel store
func NewStore() *Store {
	return &Store{
		values:   make(map[string]interface{}),
		failures: make(map[string]error),
	}
}

// Has reports whether a value has been published under key
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// SetFailure records that the provider for key permanently failed.
// A later successful Set clears the failure.
func (s *Store) SetFailure(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[key] = err
}

// Failure returns the recorded provider failure for key, if any
func (s *Store) Failure(key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failures[key]
}

func (s *Store) set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	delete(s.failures, key)
}

func (s *Store) get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Key is a compile-time marker tying a string data key to its value type.
// Each data category declares exactly one Key; concurrent writers to the
// same key race (last writer wins), so keys are single-writer by convention.
type Key[T any] struct {
	ID string
}

// Set publishes a value under the key
func (k Key[T]) Set(s *Store, value T) {
	s.set(k.ID, value)
}

// Get returns the published value, if any
func (k Key[T]) Get(s *Store) (T, bool) {
	var zero T
	v, ok := s.get(k.ID)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

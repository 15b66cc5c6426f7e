package memory

import (
	"context"
	"sync"
)

// Store keeps the document in process memory. Useful for tests and for
// throwaway sessions.
type Store struct {
	mu    sync.Mutex
	doc   []byte
	found bool
	saves int
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.found {
		return nil, false, nil
	}
	return append([]byte(nil), s.doc...), true, nil
}

func (s *Store) Save(_ context.Context, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = append([]byte(nil), raw...)
	s.found = true
	s.saves++
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
	s.found = false
	return nil
}

// Saves returns how many times Save has been called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

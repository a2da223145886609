package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/ndtm/pkg/domain"
)

// Store implements ports.ProgramStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]string),
	}
}

// NewStoreFrom creates a store seeded with programs keyed by name.
func NewStoreFrom(programs map[string]string) *Store {
	s := NewStore()
	maps.Copy(s.data, programs)
	return s
}

// Save stores the program text.
func (s *Store) Save(ctx context.Context, name string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = text
	return nil
}

// Load retrieves the program text.
func (s *Store) Load(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text, ok := s.data[name]
	if !ok {
		return "", domain.ErrProgramNotFound
	}
	return text, nil
}

// Delete removes the program.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored program names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.data)), nil
}

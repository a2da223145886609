package ports_test

import (
	"context"
	"slices"
	"testing"

	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/aretw0/ndtm/pkg/ports"
)

// MockStore is a map-backed ProgramStore for testing purposes.
type MockStore struct {
	data map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]string)}
}

func (m *MockStore) Save(ctx context.Context, name, text string) error {
	m.data[name] = text
	return nil
}

func (m *MockStore) Load(ctx context.Context, name string) (string, error) {
	text, ok := m.data[name]
	if !ok {
		return "", domain.ErrProgramNotFound
	}
	return text, nil
}

func (m *MockStore) Delete(ctx context.Context, name string) error {
	delete(m.data, name)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func TestProgramStore_Contract(t *testing.T) {
	ports.RunProgramStoreContract(t, NewMockStore())
}

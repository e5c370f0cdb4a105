package mocks

import (
	"context"
	"sync"

	"github.com/dawid-splk/task1-store/internal/catalog"
)

// MockProductStore is an in-memory catalog.Store that records calls for
// assertions and can be primed with errors.
type MockProductStore struct {
	mu       sync.RWMutex
	products map[int64]catalog.Product
	lastID   int64

	// For tracking calls in tests
	InsertCalls []catalog.Product
	SaveCalls   []catalog.Product
	DeleteCalls []int64

	InsertErr error
	FindErr   error
	SaveErr   error
	DeleteErr error
}

// NewMockProductStore creates a new MockProductStore
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{
		products: make(map[int64]catalog.Product),
	}
}

// Seed places a record directly in the store, bypassing call tracking.
// The record's ID must be set; the id counter is advanced past it.
func (m *MockProductStore) Seed(p catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products[p.ID] = p
	if p.ID > m.lastID {
		m.lastID = p.ID
	}
}

// Product returns the current stored state of a record.
func (m *MockProductStore) Product(id int64) (catalog.Product, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	return p, ok
}

func (m *MockProductStore) Insert(_ context.Context, p catalog.Product) (catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InsertCalls = append(m.InsertCalls, p)
	if m.InsertErr != nil {
		return catalog.Product{}, m.InsertErr
	}

	m.lastID++
	p.ID = m.lastID
	m.products[p.ID] = p
	return p, nil
}

func (m *MockProductStore) FindByID(_ context.Context, id int64) (catalog.Product, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FindErr != nil {
		return catalog.Product{}, false, m.FindErr
	}
	p, ok := m.products[id]
	return p, ok, nil
}

func (m *MockProductStore) FindAll(_ context.Context) ([]catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var products []catalog.Product
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

func (m *MockProductStore) FindByCategory(_ context.Context, category catalog.Category) ([]catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var products []catalog.Product
	for _, p := range m.products {
		if p.Category == category {
			products = append(products, p)
		}
	}
	return products, nil
}

func (m *MockProductStore) Save(_ context.Context, p catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, p)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.products[p.ID] = p
	return nil
}

func (m *MockProductStore) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteErr != nil {
		return false, m.DeleteErr
	}
	_, ok := m.products[id]
	delete(m.products, id)
	return ok, nil
}

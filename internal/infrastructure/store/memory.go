package store

import (
	"context"
	"sync"

	"github.com/dawid-splk/task1-store/internal/catalog"
)

// MemoryStore is an in-memory catalog.Store. It is the default backend
// for local runs and tests; ids are assigned from a monotonic counter and
// never reused, matching the durable backends.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[int64]catalog.Product
	lastID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[int64]catalog.Product),
	}
}

func (ms *MemoryStore) Insert(_ context.Context, p catalog.Product) (catalog.Product, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.lastID++
	p.ID = ms.lastID
	ms.products[p.ID] = p
	return p, nil
}

func (ms *MemoryStore) FindByID(_ context.Context, id int64) (catalog.Product, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	p, ok := ms.products[id]
	return p, ok, nil
}

func (ms *MemoryStore) FindAll(_ context.Context) ([]catalog.Product, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	products := make([]catalog.Product, 0, len(ms.products))
	for _, p := range ms.products {
		products = append(products, p)
	}
	return products, nil
}

func (ms *MemoryStore) FindByCategory(_ context.Context, category catalog.Category) ([]catalog.Product, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var products []catalog.Product
	for _, p := range ms.products {
		if p.Category == category {
			products = append(products, p)
		}
	}
	return products, nil
}

func (ms *MemoryStore) Save(_ context.Context, p catalog.Product) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.products[p.ID] = p
	return nil
}

func (ms *MemoryStore) Delete(_ context.Context, id int64) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	_, ok := ms.products[id]
	delete(ms.products, id)
	return ok, nil
}

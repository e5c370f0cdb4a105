package catalog

import (
	"context"
	"fmt"
	"log"
	"strconv"
)

// Store is the durable record store the service writes through. The store
// is the sole authority on whether a product exists. Implementations must
// be safe for concurrent use: the HTTP path and the status consumer write
// through the same instance.
type Store interface {
	// Insert persists a new record and returns it with the assigned id.
	Insert(ctx context.Context, p Product) (Product, error)

	// FindByID returns the record and whether it exists.
	FindByID(ctx context.Context, id int64) (Product, bool, error)

	FindAll(ctx context.Context) ([]Product, error)
	FindByCategory(ctx context.Context, category Category) ([]Product, error)

	// Save overwrites an existing record in full.
	Save(ctx context.Context, p Product) error

	// Delete removes a record, reporting whether it was present.
	Delete(ctx context.Context, id int64) (bool, error)
}

// Publisher emits control events. Keyed publishing keeps events for one
// product on one partition.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Service owns the product lifecycle. It holds no state of its own; every
// operation reads and writes through the store.
type Service struct {
	store   Store
	control Publisher
}

func NewService(store Store, control Publisher) *Service {
	return &Service{store: store, control: control}
}

// Create validates the payload, persists a record with zero stock and
// announces the new id on the control topic. Nothing is published when
// persistence fails.
func (s *Service) Create(ctx context.Context, w ProductWrite) (*Product, error) {
	p, err := FromWrite(w, 0, 0)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Insert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	// The record is already authoritative at this point, so a publish
	// failure is logged rather than unwinding the creation.
	key := strconv.FormatInt(created.ID, 10)
	if err := s.control.Publish(ctx, key, nil); err != nil {
		log.Printf("[Catalog] Failed to publish control event for product %s: %v", key, err)
	}

	return &created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	p, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListByCategory rejects unknown categories before touching the store; an
// unrecognized value is a caller error, not an empty result.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	c, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	products, err := s.store.FindByCategory(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return products, nil
}

// Replace rebuilds the record from the payload, keeping the existing id
// and the existing quantity. Stock belongs to the status channel; a full
// update must not zero it.
func (s *Service) Replace(ctx context.Context, id int64, w ProductWrite) error {
	existing, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find product %d: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}

	p, err := FromWrite(w, existing.ID, existing.Quantity)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, p); err != nil {
		return fmt.Errorf("save product %d: %w", id, err)
	}
	return nil
}

// Patch merges the provided fields into the stored record. Absent fields
// stay untouched; quantity is never part of a patch.
func (s *Service) Patch(ctx context.Context, id int64, patch ProductPatch) error {
	p, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find product %d: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return ErrInvalidName
		}
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return ErrInvalidPrice
		}
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.ExpiryDate != nil {
		p.ExpiryDate = *patch.ExpiryDate
	}

	if err := s.store.Save(ctx, p); err != nil {
		return fmt.Errorf("save product %d: %w", id, err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// ApplyStatus overwrites the stored quantity with an absolute snapshot
// from the inventory channel. The value is taken as-is: no clamping, no
// accumulation. Reapplying the same snapshot is a no-op observationally,
// which is what makes at-least-once delivery safe here.
func (s *Service) ApplyStatus(ctx context.Context, id int64, quantity float64) error {
	p, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find product %d: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}

	p.Quantity = quantity
	if err := s.store.Save(ctx, p); err != nil {
		return fmt.Errorf("save product %d: %w", id, err)
	}
	return nil
}

package catalog

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrInvalidName     = errors.New("name is required")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidExpiry   = errors.New("expiry date is required")
)

// Category is a member of the fixed set of product categories. Values
// outside the set are rejected at the boundary and never stored.
type Category string

const (
	CategoryDairy     Category = "dairy products"
	CategoryBakery    Category = "bakery"
	CategoryMeat      Category = "meat"
	CategoryProduce   Category = "fruits and vegetables"
	CategoryBeverages Category = "beverages"
	CategoryFrozen    Category = "frozen"
)

// ParseCategory validates a raw category string against the closed set.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryDairy, CategoryBakery, CategoryMeat, CategoryProduce, CategoryBeverages, CategoryFrozen:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Product is the stored record. The store assigns ID on insert; quantity
// starts at zero and is only moved by status events or a full replace.
type Product struct {
	ID         int64
	Name       string
	Price      float64
	Category   Category
	ExpiryDate time.Time
	Quantity   float64
}

// IsInvalidInput reports whether err belongs to the caller-error class,
// as opposed to a missing record or a store fault.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidExpiry)
}

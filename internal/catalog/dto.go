package catalog

import "time"

// ProductWrite is the client-supplied payload for create and full update.
// Quantity is deliberately absent: the write path never sets stock.
type ProductWrite struct {
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Category   string    `json:"category"`
	ExpiryDate time.Time `json:"expiryDate"`
}

// ProductRead is the API-facing shape of a stored record.
type ProductRead struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Category   string    `json:"category"`
	ExpiryDate time.Time `json:"expiryDate"`
	Quantity   float64   `json:"quantity"`
}

// ProductPatch carries the optional fields of a form-style partial
// update. Nil means "leave the stored field alone".
type ProductPatch struct {
	Name       *string
	Price      *float64
	Category   *Category
	ExpiryDate *time.Time
}

// FromWrite validates a write payload and maps it onto a record with the
// given identity and stock level. It is the only path from the wire shape
// to the stored shape.
func FromWrite(w ProductWrite, id int64, quantity float64) (Product, error) {
	if w.Name == "" {
		return Product{}, ErrInvalidName
	}
	if w.Price < 0 {
		return Product{}, ErrInvalidPrice
	}
	category, err := ParseCategory(w.Category)
	if err != nil {
		return Product{}, err
	}
	if w.ExpiryDate.IsZero() {
		return Product{}, ErrInvalidExpiry
	}
	return Product{
		ID:         id,
		Name:       w.Name,
		Price:      w.Price,
		Category:   category,
		ExpiryDate: w.ExpiryDate,
		Quantity:   quantity,
	}, nil
}

// ToRead maps a stored record to its API-facing shape.
func ToRead(p Product) ProductRead {
	return ProductRead{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Category:   string(p.Category),
		ExpiryDate: p.ExpiryDate,
		Quantity:   p.Quantity,
	}
}

// ToReadList maps a slice of records. It never returns nil so the API
// serializes an empty catalog as [] rather than null.
func ToReadList(products []Product) []ProductRead {
	out := make([]ProductRead, 0, len(products))
	for _, p := range products {
		out = append(out, ToRead(p))
	}
	return out
}

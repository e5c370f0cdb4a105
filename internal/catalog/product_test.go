package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory_KnownValues(t *testing.T) {
	for _, raw := range []string{
		"dairy products", "bakery", "meat", "fruits and vegetables", "beverages", "frozen",
	} {
		c, err := ParseCategory(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, Category(raw), c)
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := ParseCategory("not-a-category")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestParseCategory_CaseSensitive(t *testing.T) {
	_, err := ParseCategory("Bakery")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestFromWrite_MapsAllFields(t *testing.T) {
	expiry := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	w := ProductWrite{Name: "cheese", Price: 5.99, Category: "dairy products", ExpiryDate: expiry}

	p, err := FromWrite(w, 42, 7.5)

	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "cheese", p.Name)
	assert.Equal(t, 5.99, p.Price)
	assert.Equal(t, CategoryDairy, p.Category)
	assert.Equal(t, expiry, p.ExpiryDate)
	assert.Equal(t, 7.5, p.Quantity)
}

func TestFromWrite_ZeroPriceAllowed(t *testing.T) {
	w := ProductWrite{Name: "sample", Price: 0, Category: "bakery",
		ExpiryDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)}

	p, err := FromWrite(w, 1, 0)

	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Price)
}

func TestToRead_RoundTripsFields(t *testing.T) {
	expiry := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	p := Product{ID: 1, Name: "cheese", Price: 5.99, Category: CategoryDairy, ExpiryDate: expiry, Quantity: 3}

	r := ToRead(p)

	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, "dairy products", r.Category)
	assert.Equal(t, 3.0, r.Quantity)
}

func TestToReadList_EmptyIsNotNil(t *testing.T) {
	out := ToReadList(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestIsInvalidInput(t *testing.T) {
	assert.True(t, IsInvalidInput(ErrInvalidName))
	assert.True(t, IsInvalidInput(ErrInvalidPrice))
	assert.True(t, IsInvalidInput(ErrInvalidCategory))
	assert.True(t, IsInvalidInput(ErrInvalidExpiry))
	assert.False(t, IsInvalidInput(ErrNotFound))
}

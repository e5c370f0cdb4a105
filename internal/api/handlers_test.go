package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dawid-splk/task1-store/internal/api"
	"github.com/dawid-splk/task1-store/internal/catalog"
	"github.com/dawid-splk/task1-store/internal/infrastructure/store/mocks"
)

func newTestServer() (http.Handler, *mocks.MockProductStore, *mocks.MockPublisher) {
	productStore := mocks.NewMockProductStore()
	publisher := mocks.NewMockPublisher()
	service := catalog.NewService(productStore, publisher)
	return api.NewRouter(api.NewHandlers(service)), productStore, publisher
}

func seedCheese(store *mocks.MockProductStore, id int64, quantity float64) catalog.Product {
	p := catalog.Product{
		ID:         id,
		Name:       "cheese",
		Price:      5.99,
		Category:   catalog.CategoryDairy,
		ExpiryDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Quantity:   quantity,
	}
	store.Seed(p)
	return p
}

func doRequest(router http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateProduct_Created(t *testing.T) {
	router, _, publisher := newTestServer()

	body := `{"name":"cheese","price":5.99,"category":"dairy products","expiryDate":"2026-12-01T00:00:00Z"}`
	rec := doRequest(router, http.MethodPost, "/products", "application/json", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/1", rec.Header().Get("Location"))

	var got catalog.ProductRead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "cheese", got.Name)
	assert.Equal(t, 0.0, got.Quantity)

	require.Len(t, publisher.PublishCalls, 1)
	assert.Equal(t, "1", publisher.PublishCalls[0].Key)
}

func TestCreateProduct_MalformedJSON(t *testing.T) {
	router, _, _ := newTestServer()

	rec := doRequest(router, http.MethodPost, "/products", "application/json", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	router, _, publisher := newTestServer()

	body := `{"name":"cheese","price":5.99,"category":"bogus","expiryDate":"2026-12-01T00:00:00Z"}`
	rec := doRequest(router, http.MethodPost, "/products", "application/json", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, publisher.PublishCalls)
}

func TestGetProducts_EmptyListIsJSONArray(t *testing.T) {
	router, _, _ := newTestServer()

	rec := doRequest(router, http.MethodGet, "/products", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetProducts_FilterByCategory(t *testing.T) {
	router, productStore, _ := newTestServer()
	seedCheese(productStore, 1, 0)
	productStore.Seed(catalog.Product{ID: 2, Name: "bread", Price: 2.5,
		Category: catalog.CategoryBakery, ExpiryDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)})

	rec := doRequest(router, http.MethodGet, "/products?category=dairy+products", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []catalog.ProductRead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestGetProducts_UnknownCategory(t *testing.T) {
	router, _, _ := newTestServer()

	rec := doRequest(router, http.MethodGet, "/products?category=not-a-category", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProduct_Found(t *testing.T) {
	router, productStore, _ := newTestServer()
	seedCheese(productStore, 7, 12)

	rec := doRequest(router, http.MethodGet, "/products/7", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got catalog.ProductRead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, 12.0, got.Quantity)
}

func TestGetProduct_NotFound(t *testing.T) {
	router, _, _ := newTestServer()

	rec := doRequest(router, http.MethodGet, "/products/404", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProduct_BadID(t *testing.T) {
	router, _, _ := newTestServer()

	rec := doRequest(router, http.MethodGet, "/products/abc", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProduct_NoContent(t *testing.T) {
	router, productStore, _ := newTestServer()
	seedCheese(productStore, 3, 8)

	body := `{"name":"aged cheese","price":9.99,"category":"dairy products","expiryDate":"2027-01-01T00:00:00Z"}`
	rec := doRequest(router, http.MethodPut, "/products/3", "application/json", body)

	require.Equal(t, http.StatusNoContent, rec.Code)
	stored, _ := productStore.Product(3)
	assert.Equal(t, "aged cheese", stored.Name)
	assert.Equal(t, 8.0, stored.Quantity)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	router, _, _ := newTestServer()

	body := `{"name":"x","price":1,"category":"bakery","expiryDate":"2027-01-01T00:00:00Z"}`
	rec := doRequest(router, http.MethodPut, "/products/404", "application/json", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchProduct_PriceOnly(t *testing.T) {
	router, productStore, _ := newTestServer()
	before := seedCheese(productStore, 5, 8)

	rec := doRequest(router, http.MethodPatch, "/products/5",
		"application/x-www-form-urlencoded", "price=5.0")

	require.Equal(t, http.StatusNoContent, rec.Code)
	stored, _ := productStore.Product(5)
	assert.Equal(t, 5.0, stored.Price)
	assert.Equal(t, before.Name, stored.Name)
	assert.Equal(t, before.Category, stored.Category)
	assert.Equal(t, before.Quantity, stored.Quantity)
}

func TestPatchProduct_Category(t *testing.T) {
	router, productStore, _ := newTestServer()
	seedCheese(productStore, 5, 8)

	rec := doRequest(router, http.MethodPatch, "/products/5",
		"application/x-www-form-urlencoded", "category=bakery")

	require.Equal(t, http.StatusNoContent, rec.Code)
	stored, _ := productStore.Product(5)
	assert.Equal(t, catalog.CategoryBakery, stored.Category)
}

func TestPatchProduct_BadPrice(t *testing.T) {
	router, productStore, _ := newTestServer()
	seedCheese(productStore, 5, 8)

	rec := doRequest(router, http.MethodPatch, "/products/5",
		"application/x-www-form-urlencoded", "price=lots")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchProduct_BadExpiryDate(t *testing.T) {
	router, productStore, _ := newTestServer()
	seedCheese(productStore, 5, 8)

	rec := doRequest(router, http.MethodPatch, "/products/5",
		"application/x-www-form-urlencoded", "expiryDate=tomorrow")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchProduct_NotFound(t *testing.T) {
	router, _, _ := newTestServer()

	rec := doRequest(router, http.MethodPatch, "/products/404",
		"application/x-www-form-urlencoded", "price=5.0")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct_NoContent(t *testing.T) {
	router, productStore, _ := newTestServer()
	seedCheese(productStore, 9, 0)

	rec := doRequest(router, http.MethodDelete, "/products/9", "", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := productStore.Product(9)
	assert.False(t, ok)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	router, _, _ := newTestServer()

	rec := doRequest(router, http.MethodDelete, "/products/404", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProducts_MethodNotAllowed(t *testing.T) {
	router, _, _ := newTestServer()

	rec := doRequest(router, http.MethodDelete, "/products", "", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

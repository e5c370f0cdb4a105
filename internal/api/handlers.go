package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dawid-splk/task1-store/internal/catalog"
)

type Handlers struct {
	catalog *catalog.Service
}

func NewHandlers(svc *catalog.Service) *Handlers {
	return &Handlers{catalog: svc}
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var payload catalog.ProductWrite
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.catalog.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/%d", product.ID))
	respondJSON(w, http.StatusCreated, catalog.ToRead(*product))
}

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []catalog.Product
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		products, err = h.catalog.ListByCategory(r.Context(), category)
	} else {
		products, err = h.catalog.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, catalog.ToReadList(products))
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, catalog.ToRead(*product))
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var payload catalog.ProductWrite
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.catalog.Replace(r.Context(), id, payload); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PatchProduct handles the form-style partial update: every field is
// optional, supplied as a form or query parameter.
func (h *Handlers) PatchProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var patch catalog.ProductPatch
	if v, set := formValue(r, "name"); set {
		patch.Name = &v
	}
	if v, set := formValue(r, "price"); set {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "Invalid price", http.StatusBadRequest)
			return
		}
		patch.Price = &price
	}
	if v, set := formValue(r, "category"); set {
		category, err := catalog.ParseCategory(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		patch.Category = &category
	}
	if v, set := formValue(r, "expiryDate"); set {
		expiry, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "Invalid expiryDate", http.StatusBadRequest)
			return
		}
		patch.ExpiryDate = &expiry
	}

	if err := h.catalog.Patch(r.Context(), id, patch); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case catalog.IsInvalidInput(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, "Product not found", http.StatusNotFound)
	default:
		log.Printf("[API] Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimPrefix(r.URL.Path, "/products/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// formValue distinguishes an absent field from an empty one.
func formValue(r *http.Request, key string) (string, bool) {
	values, ok := r.Form[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Package inventory bridges the inventory-status topic to the catalog.
// Each message is an absolute stock snapshot for one product id.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/dawid-splk/task1-store/internal/catalog"
)

// Applier is the slice of the catalog the handler needs.
type Applier interface {
	ApplyStatus(ctx context.Context, id int64, quantity float64) error
}

// Handler processes status events from Kafka.
type Handler struct {
	catalog  Applier
	dangling atomic.Int64
}

func NewHandler(catalog Applier) *Handler {
	return &Handler{catalog: catalog}
}

// HandleEvent decodes one status event and applies it. Malformed events
// and dangling references are logged and swallowed: the synchronous API
// has no caller to surface them to, and retrying cannot help.
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	id, err := strconv.ParseInt(string(key), 10, 64)
	if err != nil {
		log.Printf("[Inventory] Skipping event with malformed key %q: %v", key, err)
		return nil
	}

	quantity, err := strconv.ParseFloat(strings.TrimSpace(string(value)), 64)
	if err != nil {
		log.Printf("[Inventory] Skipping event for product %d with malformed quantity %q: %v", id, value, err)
		return nil
	}

	err = h.catalog.ApplyStatus(ctx, id, quantity)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		// Dangling reference: the upstream named an id with no record.
		h.dangling.Add(1)
		log.Printf("[Inventory] Dangling status event: product %d does not exist", id)
		return nil
	case err != nil:
		return fmt.Errorf("apply status for product %d: %w", id, err)
	}

	log.Printf("[Inventory] Product %d quantity set to %v", id, quantity)
	return nil
}

// Danglings returns how many status events referenced a missing product.
func (h *Handler) Danglings() int64 {
	return h.dangling.Load()
}

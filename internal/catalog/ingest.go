package catalog

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
)

const (
	placeholderImage = "/images/food/placeholder.jpg"
	unknownName      = "Unknown Product"
	unknownVendor    = "Unknown Brand"
	batchAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	batchLength      = 9
	maxExpiryDays    = 14
	maxQuantity      = 50
)

// synth draws the synthetic stock fields. rand.Rand is not safe for
// concurrent use, so every draw holds mu.
type synth struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *synth) batchNumber() string {
	b := make([]byte, batchLength)
	for i := range b {
		b[i] = batchAlphabet[s.rng.Intn(len(batchAlphabet))]
	}
	return "BATCH-" + string(b)
}

// transform turns raw source records into inventory items.
func (s *synth) transform(raw []RawProduct) []model.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.InventoryItem, 0, len(raw))
	for i, p := range raw {
		name := p.ProductName
		if name == "" {
			name = unknownName
		}
		vendor := p.Brands
		if vendor == "" {
			vendor = unknownVendor
		}
		cat := MapCategory(p.Categories)
		items = append(items, model.InventoryItem{
			ID:              strconv.Itoa(i + 1),
			Name:            name,
			Category:        cat,
			StorageLocation: StorageFor(cat),
			Vendor:          vendor,
			BatchNumber:     s.batchNumber(),
			DaysUntilExpiry: s.rng.Intn(maxExpiryDays) + 1,
			Quantity:        s.rng.Intn(maxQuantity) + 1,
			InStock:         true,
			ImageURL:        placeholderImage,
			SimilarItems:    []string{},
		})
	}
	return items
}

package catalog

import (
	"slices"
	"strings"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
)

// DefaultPageSize is used when a pagination request carries no usable size.
const DefaultPageSize = 12

// ApplyFilters keeps the items satisfying every supplied filter.
func ApplyFilters(items []model.InventoryItem, f model.SearchFilters) []model.InventoryItem {
	out := make([]model.InventoryItem, 0, len(items))
	for _, it := range items {
		if matches(it, f) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it model.InventoryItem, f model.SearchFilters) bool {
	if f.Category != "" && it.Category != f.Category {
		return false
	}
	if f.StorageLocation != "" && it.StorageLocation != f.StorageLocation {
		return false
	}
	if f.InStock != nil && it.InStock != *f.InStock {
		return false
	}
	if f.MinQuantity != nil && it.Quantity < *f.MinQuantity {
		return false
	}
	if f.MaxDaysUntilExpiry != nil && it.DaysUntilExpiry > *f.MaxDaysUntilExpiry {
		return false
	}
	return true
}

// NormalizeQuery lower-cases and trims a search query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// SimilarityScore ranks name against an already normalized query: 3 for a
// prefix match, 2 for a substring match, 0 otherwise.
func SimilarityScore(name, query string) int {
	n := strings.ToLower(name)
	if strings.HasPrefix(n, query) {
		return 3
	}
	if strings.Contains(n, query) {
		return 2
	}
	// Unreachable after HasPrefix; kept as the lowest tier.
	if len(n) >= len(query) && n[:len(query)] == query {
		return 1
	}
	return 0
}

type scored struct {
	item  model.InventoryItem
	score int
}

// Rank drops items with no similarity to query and orders the rest by
// descending score. Ties keep their input order.
func Rank(items []model.InventoryItem, query string) []model.InventoryItem {
	hits := make([]scored, 0, len(items))
	for _, it := range items {
		if s := SimilarityScore(it.Name, query); s > 0 {
			hits = append(hits, scored{item: it, score: s})
		}
	}
	slices.SortStableFunc(hits, func(a, b scored) int { return b.score - a.score })
	out := make([]model.InventoryItem, len(hits))
	for i, h := range hits {
		out[i] = h.item
	}
	return out
}

// Paginate slices one page out of items. Pages past the end are empty but
// keep the totals.
func Paginate[T any](items []T, p model.Pagination) model.Page[T] {
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	total := len(items)
	start := (p.Page - 1) * p.PageSize
	end := min(start+p.PageSize, total)
	page := []T{}
	if start < total {
		page = items[start:end]
	}
	return model.Page[T]{
		Items:      page,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: (total + p.PageSize - 1) / p.PageSize,
	}
}

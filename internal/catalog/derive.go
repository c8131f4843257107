package catalog

import (
	"slices"
)

// Lookup reports whether a product ID is a favorite.
// A nil Lookup is treated as an empty favorite set.
type Lookup interface {
	Has(id int64) bool
}

// Record is a product annotated for display. Records are derived on every
// read and never stored.
type Record struct {
	Product
	IsFavorite bool `json:"is_favourite"`
}

// Derive maps catalog state to the ordered view list.
//
// products is only read. The returned slice is freshly allocated and shares
// nothing with the caller's inputs.
func Derive(products []Product, favorites Lookup, filter Filter) []Record {
	isFavorite := func(id int64) bool {
		return favorites != nil && favorites.Has(id)
	}

	minRating := float64(filter.MinRating)
	kept := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Rating < minRating {
			continue
		}
		if filter.Category != "" && filter.Category != AllCategories && p.Category != filter.Category {
			continue
		}
		if filter.FavoritesOnly && !isFavorite(p.ID) {
			continue
		}
		kept = append(kept, p)
	}

	// SortStableFunc keeps catalog order among equal prices.
	slices.SortStableFunc(kept, func(a, b Product) int {
		if filter.SortAscending {
			return a.Price.Cmp(b.Price)
		}
		return b.Price.Cmp(a.Price)
	})

	out := make([]Record, len(kept))
	for i, p := range kept {
		out[i] = Record{Product: p, IsFavorite: isFavorite(p.ID)}
	}
	return out
}

// Categories returns the distinct categories of products in first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

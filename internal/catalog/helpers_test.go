package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

// product creates a test product with the fields derivation looks at.
func product(id int64, price int64, rating float64, category string) Product {
	return Product{
		ID:       id,
		Name:     fmt.Sprintf("product-%d", id),
		Category: category,
		Price:    decimal.NewFromInt(price),
		Rating:   rating,
		Image:    fmt.Sprintf("https://img.example/%d.jpg", id),
	}
}

// idSet is a minimal Lookup for tests.
type idSet map[int64]bool

func (s idSet) Has(id int64) bool { return s[id] }

func ids(records []Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// productsGenerator draws catalogs with unique IDs and few distinct prices,
// so price ties are common.
func productsGenerator() *rapid.Generator[[]Product] {
	return rapid.Custom(func(t *rapid.T) []Product {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		out := make([]Product, n)
		for i := range out {
			price := rapid.Int64Range(0, 6).Draw(t, "price") * 10
			rating := float64(rapid.IntRange(0, 10).Draw(t, "rating")) / 2
			category := rapid.SampledFrom([]string{"A", "B", "C"}).Draw(t, "category")
			out[i] = product(int64(i+1), price, rating, category)
		}
		return out
	})
}

func filterGenerator() *rapid.Generator[Filter] {
	return rapid.Custom(func(t *rapid.T) Filter {
		return Filter{
			Category:      rapid.SampledFrom([]string{AllCategories, "A", "B", "C", "Z"}).Draw(t, "category"),
			MinRating:     rapid.IntRange(-1, 6).Draw(t, "min_rating"),
			SortAscending: rapid.Bool().Draw(t, "asc"),
			FavoritesOnly: rapid.Bool().Draw(t, "favorites_only"),
		}
	})
}

// favoritesGenerator marks products as favorites from one drawn bit mask.
// The mask is drawn even for an empty catalog so every case consumes data.
func favoritesGenerator(products []Product) *rapid.Generator[idSet] {
	return rapid.Custom(func(t *rapid.T) idSet {
		mask := rapid.Uint64().Draw(t, "favorites_mask")
		s := idSet{}
		for i, p := range products {
			if mask&(1<<(uint(i)%64)) != 0 {
				s[p.ID] = true
			}
		}
		return s
	})
}

package testutil

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/PraveshMalvi/buyora/internal/catalog"
)

// Product creates a product with a generated name and image.
func Product(id, price int64, rating float64, category string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     fmt.Sprintf("product-%d", id),
		Category: category,
		Price:    decimal.NewFromInt(price),
		Rating:   rating,
		Image:    fmt.Sprintf("https://img.example/%d.jpg", id),
	}
}

// TwoProductCatalog is the two-item catalog used by the reference scenarios:
// id 1 (price 50, rating 4, "A") and id 2 (price 30, rating 2, "B").
func TwoProductCatalog() *catalog.Catalog {
	return catalog.MustNew([]catalog.Product{
		Product(1, 50, 4, "A"),
		Product(2, 30, 2, "B"),
	})
}

// SequentialCatalog creates n products with ids 1..n, price 10*id, rating 5,
// cycling through categories "A", "B", "C".
func SequentialCatalog(n int) *catalog.Catalog {
	categories := []string{"A", "B", "C"}
	products := make([]catalog.Product, n)
	for i := range products {
		id := int64(i + 1)
		products[i] = Product(id, id*10, 5, categories[i%len(categories)])
	}
	return catalog.MustNew(products)
}

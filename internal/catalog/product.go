package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Product is a single catalog entry. Products are never mutated after the
// catalog is built.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"product_name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Rating   float64         `json:"rating" validate:"gte=0,lte=5"`
	Image    string          `json:"image,omitempty"`
}

var validate = validator.New()

// Catalog is the full, ordered product list for a session.
type Catalog struct {
	products []Product
	byID     map[int64]int
}

// New builds a catalog from products in the given order.
//
// Each product is validated (non-empty name and category, rating within
// [0,5], non-negative price) and IDs must be unique. Names and categories are
// NFC-normalized so visually identical categories compare equal.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[int64]int, len(products)),
	}

	for i, p := range products {
		if err := validate.Struct(p); err != nil {
			return nil, &LoadError{
				Code:    ErrCodeInvalid,
				Message: fmt.Sprintf("product[%d] (id=%d) failed validation", i, p.ID),
				Err:     err,
			}
		}
		if p.Price.IsNegative() {
			return nil, &LoadError{
				Code:    ErrCodeInvalid,
				Message: fmt.Sprintf("product[%d] (id=%d) has negative price %s", i, p.ID, p.Price),
			}
		}
		if prev, dup := c.byID[p.ID]; dup {
			return nil, &LoadError{
				Code:    ErrCodeInvalid,
				Message: fmt.Sprintf("product[%d] reuses id %d of product[%d]", i, p.ID, prev),
			}
		}

		p.Name = norm.NFC.String(p.Name)
		p.Category = norm.NFC.String(p.Category)
		c.products[i] = p
		c.byID[p.ID] = i
	}

	return c, nil
}

// MustNew is New for fixtures that are known to be valid.
func MustNew(products []Product) *Catalog {
	c, err := New(products)
	if err != nil {
		panic(err)
	}
	return c
}

// Products returns a copy of the catalog in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Lookup returns the product with the given ID.
func (c *Catalog) Lookup(id int64) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Categories returns the distinct categories of the full catalog in
// first-seen order.
func (c *Catalog) Categories() []string {
	return Categories(c.products)
}

// Derive runs the view derivation over the whole catalog.
func (c *Catalog) Derive(favorites Lookup, filter Filter) []Record {
	return Derive(c.products, favorites, filter)
}

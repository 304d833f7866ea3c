package catalog

import (
	"slices"
	"time"

	"github.com/SirClappington/dj-product-explorer/internal/models"
)

// Table is the read-only product table. It is built once at startup and
// shared by every request without locking.
type Table struct {
	products []models.Product
	source   string
	loadedAt time.Time
}

// NewTable takes ownership of products and renumbers them in order.
func NewTable(source string, products []models.Product) *Table {
	for i := range products {
		products[i].Index = i
	}
	return &Table{
		products: products,
		source:   source,
		loadedAt: time.Now(),
	}
}

// Products returns a copy of the rows in source order.
func (t *Table) Products() []models.Product {
	return slices.Clone(t.products)
}

func (t *Table) Len() int {
	return len(t.products)
}

func (t *Table) Source() string {
	return t.source
}

func (t *Table) LoadedAt() time.Time {
	return t.loadedAt
}

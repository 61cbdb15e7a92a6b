// Package catalog holds the static product catalog. Products are loaded
// once at startup, either from the embedded seed or from a JSON file, and
// served read-only for the lifetime of the process.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

//go:embed products.json
var seedJSON []byte

// Catalog is an immutable, ordered collection of products. The load order
// defines catalog order, which search treats as relevance order.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// New builds a catalog from the given products, validating each entry.
func New(products []domain.Product) (*Catalog, error) {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product at index %d has empty id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if p.Title == "" {
			return nil, fmt.Errorf("product %q has empty title", p.ID)
		}
		if p.Price <= 0 {
			return nil, fmt.Errorf("product %q has non-positive price %v", p.ID, p.Price)
		}
		if !domain.IsValidCategory(p.Category) {
			return nil, fmt.Errorf("product %q has unknown category %q", p.ID, p.Category)
		}
		byID[p.ID] = i
	}
	return &Catalog{products: products, byID: byID}, nil
}

// Load parses a catalog from raw JSON.
func Load(data []byte) (*Catalog, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(products)
}

// LoadFile reads a catalog from the given path, falling back to the
// embedded seed when the path is empty.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Load(seedJSON)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Load(data)
}

// All returns every product in catalog order. The returned slice is a copy.
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID returns the product with the given ID.
func (c *Catalog) ByID(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return c.products[i], nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

package domain

import "math"

// Product category constants. The catalog enumeration is fixed.
const (
	CategoryElectronics = "Electronics"
	CategoryBooks       = "Books"
	CategoryClothing    = "Clothing"
	CategoryHome        = "Home"
	CategoryToys        = "Toys"
)

// Product represents a purchasable item in the static catalog.
// Products are loaded once at startup and never mutated.
type Product struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"original_price,omitempty"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Images        []string `json:"images"`
	Category      string   `json:"category"`
	Prime         bool     `json:"prime"`
	InStock       bool     `json:"in_stock"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
}

// PrimaryImage returns the first image reference, or "" for an image-less product.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// DiscountPercent returns the rounded percentage discount implied by the
// original price, or 0 when no original price is set.
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice <= p.Price {
		return 0
	}
	return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
}

// Categories returns the fixed category enumeration in display order.
func Categories() []string {
	return []string{
		CategoryElectronics,
		CategoryBooks,
		CategoryClothing,
		CategoryHome,
		CategoryToys,
	}
}

// IsValidCategory checks whether the given name is a known category.
func IsValidCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

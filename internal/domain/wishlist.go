package domain

import "time"

// Wishlist holds the products a session has saved for later. Entries have
// set semantics: at most one per product ID, no quantity.
type Wishlist struct {
	SessionKey string         `json:"session_key"`
	Items      []WishlistItem `json:"items"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// WishlistItem is a saved product reference with enough display data to
// render the wishlist without a catalog lookup.
type WishlistItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Rating    float64 `json:"rating"`
	Reviews   int     `json:"reviews"`
}

// Count returns the number of saved products.
func (w *Wishlist) Count() int {
	return len(w.Items)
}

// Has reports whether the given product is saved.
func (w *Wishlist) Has(productID string) bool {
	return w.FindIndex(productID) >= 0
}

// FindIndex returns the index of the entry for the given product ID, or -1.
func (w *Wishlist) FindIndex(productID string) int {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Package search filters and orders catalog products. Filter is a pure
// function over an input slice; the same input and parameters always yield
// the same output.
package search

import (
	"sort"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

// CategoryAll matches every category, same as leaving the filter empty.
const CategoryAll = "all"

// Price range filters.
const (
	PriceAll     = "all"
	PriceUnder50 = "under50"
	Price50To200 = "50to200"
	PriceOver200 = "over200"
)

// Sort orders. Relevance preserves catalog order.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
)

// Params narrows and orders a product listing. Zero values mean no
// filtering and relevance order.
type Params struct {
	Query      string
	Category   string
	PriceRange string
	PrimeOnly  bool
	Sort       string
}

// IsValidPriceRange checks whether the given price range name is known.
func IsValidPriceRange(r string) bool {
	switch r {
	case "", PriceAll, PriceUnder50, Price50To200, PriceOver200:
		return true
	}
	return false
}

// IsValidSort checks whether the given sort name is known.
func IsValidSort(s string) bool {
	switch s {
	case "", SortRelevance, SortPriceAsc, SortPriceDesc, SortRating:
		return true
	}
	return false
}

// Filter applies all parameters to the product list and returns a new
// slice. The input is never modified. Unknown price ranges and sorts fall
// back to all / relevance.
func Filter(products []domain.Product, p Params) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	query := strings.ToLower(strings.TrimSpace(p.Query))

	for _, prod := range products {
		if query != "" && !matchesQuery(&prod, query) {
			continue
		}
		if p.Category != "" && p.Category != CategoryAll && prod.Category != p.Category {
			continue
		}
		if !matchesPrice(prod.Price, p.PriceRange) {
			continue
		}
		if p.PrimeOnly && !prod.Prime {
			continue
		}
		out = append(out, prod)
	}

	sortProducts(out, p.Sort)
	return out
}

// matchesQuery does a case-insensitive substring match against the title
// and description.
func matchesQuery(p *domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

func matchesPrice(price float64, priceRange string) bool {
	switch priceRange {
	case PriceUnder50:
		return price < 50
	case Price50To200:
		return price >= 50 && price <= 200
	case PriceOver200:
		return price > 200
	default:
		return true
	}
}

// sortProducts orders in place. Ties keep their relative order, so equal
// keys stay in catalog order.
func sortProducts(products []domain.Product, order string) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}

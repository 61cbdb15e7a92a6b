package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
)

func fixtureProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Title: "Wireless Headphones", Category: domain.CategoryElectronics, Price: 149.99, Rating: 4.6, Prime: true, Description: "noise cancelling"},
		{ID: "p2", Title: "USB-C Charger", Category: domain.CategoryElectronics, Price: 34.99, Rating: 4.8, Prime: true},
		{ID: "p3", Title: "Historical Novel", Category: domain.CategoryBooks, Price: 14.99, Rating: 4.7, Prime: true},
		{ID: "p4", Title: "Merino Sweater", Category: domain.CategoryClothing, Price: 68.00, Rating: 4.3, Prime: true},
		{ID: "p5", Title: "4K Monitor", Category: domain.CategoryElectronics, Price: 329.00, Rating: 4.4, Prime: false},
		{ID: "p6", Title: "Desk Lamp", Category: domain.CategoryHome, Price: 39.99, Rating: 4.3, Prime: true},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilter_NoParams_ReturnsAllInOrder(t *testing.T) {
	got := Filter(fixtureProducts(), Params{})
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5", "p6"}, ids(got))
}

func TestFilter_Query_CaseInsensitive(t *testing.T) {
	got := Filter(fixtureProducts(), Params{Query: "  MONITOR "})
	assert.Equal(t, []string{"p5"}, ids(got))

	// Query also matches description text.
	got = Filter(fixtureProducts(), Params{Query: "noise"})
	assert.Equal(t, []string{"p1"}, ids(got))

	// Category names are not part of the searched text.
	got = Filter(fixtureProducts(), Params{Query: "books"})
	assert.Empty(t, got)
}

func TestFilter_Category(t *testing.T) {
	got := Filter(fixtureProducts(), Params{Category: domain.CategoryElectronics})
	assert.Equal(t, []string{"p1", "p2", "p5"}, ids(got))

	// "all" matches everything, same as no filter.
	got = Filter(fixtureProducts(), Params{Category: CategoryAll})
	assert.Len(t, got, 6)
}

func TestFilter_PriceRanges(t *testing.T) {
	products := fixtureProducts()

	tests := []struct {
		priceRange string
		want       []string
	}{
		{PriceAll, []string{"p1", "p2", "p3", "p4", "p5", "p6"}},
		{PriceUnder50, []string{"p2", "p3", "p6"}},
		{Price50To200, []string{"p1", "p4"}},
		{PriceOver200, []string{"p5"}},
	}

	for _, tt := range tests {
		t.Run(tt.priceRange, func(t *testing.T) {
			got := Filter(products, Params{PriceRange: tt.priceRange})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_PriceBoundaries(t *testing.T) {
	products := []domain.Product{
		{ID: "at50", Price: 50},
		{ID: "at200", Price: 200},
		{ID: "just-under", Price: 49.99},
		{ID: "just-over", Price: 200.01},
	}

	// 50 and 200 are both inside the middle bracket, exclusive elsewhere.
	assert.Equal(t, []string{"just-under"}, ids(Filter(products, Params{PriceRange: PriceUnder50})))
	assert.Equal(t, []string{"at50", "at200"}, ids(Filter(products, Params{PriceRange: Price50To200})))
	assert.Equal(t, []string{"just-over"}, ids(Filter(products, Params{PriceRange: PriceOver200})))
}

func TestFilter_PrimeOnly(t *testing.T) {
	got := Filter(fixtureProducts(), Params{PrimeOnly: true})
	assert.NotContains(t, ids(got), "p5")
	for _, p := range got {
		assert.True(t, p.Prime)
	}
}

func TestFilter_SortPrice(t *testing.T) {
	asc := Filter(fixtureProducts(), Params{Sort: SortPriceAsc})
	assert.Equal(t, []string{"p3", "p2", "p6", "p4", "p1", "p5"}, ids(asc))

	desc := Filter(fixtureProducts(), Params{Sort: SortPriceDesc})
	assert.Equal(t, []string{"p5", "p1", "p4", "p6", "p2", "p3"}, ids(desc))
}

func TestFilter_SortRating_StableTies(t *testing.T) {
	got := Filter(fixtureProducts(), Params{Sort: SortRating})

	// p4 and p6 share a rating; catalog order breaks the tie.
	assert.Equal(t, []string{"p2", "p3", "p1", "p5", "p4", "p6"}, ids(got))
}

func TestFilter_Deterministic(t *testing.T) {
	products := fixtureProducts()
	p := Params{Query: "e", PriceRange: Price50To200, Sort: SortRating}

	first := Filter(products, p)
	for i := 0; i < 5; i++ {
		assert.Equal(t, ids(first), ids(Filter(products, p)))
	}
}

func TestFilter_InputNotModified(t *testing.T) {
	products := fixtureProducts()
	before := ids(products)

	Filter(products, Params{Sort: SortPriceDesc})
	assert.Equal(t, before, ids(products))
}

func TestFilter_CombinedParams(t *testing.T) {
	got := Filter(fixtureProducts(), Params{
		Category:   domain.CategoryElectronics,
		PriceRange: PriceUnder50,
		PrimeOnly:  true,
	})
	assert.Equal(t, []string{"p2"}, ids(got))
}

func TestFilter_UnknownValuesFallBack(t *testing.T) {
	got := Filter(fixtureProducts(), Params{PriceRange: "cheap", Sort: "alphabetical"})
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5", "p6"}, ids(got))
}

func TestFilter_NoMatches(t *testing.T) {
	got := Filter(fixtureProducts(), Params{Query: "zzz-nothing"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIsValidPriceRange(t *testing.T) {
	assert.True(t, IsValidPriceRange(""))
	assert.True(t, IsValidPriceRange(PriceUnder50))
	assert.False(t, IsValidPriceRange("cheap"))
}

func TestIsValidSort(t *testing.T) {
	assert.True(t, IsValidSort(""))
	assert.True(t, IsValidSort(SortRating))
	assert.False(t, IsValidSort("alphabetical"))
}

package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func TestLoadFile_EmbeddedSeed(t *testing.T) {
	c, err := LoadFile("")
	require.NoError(t, err)

	assert.Greater(t, c.Len(), 0)

	// Every category has at least one product in the seed.
	seen := map[string]bool{}
	for _, p := range c.All() {
		seen[p.Category] = true
	}
	for _, cat := range domain.Categories() {
		assert.True(t, seen[cat], "category %s missing from seed", cat)
	}
}

func TestLoadFile_MissingPath(t *testing.T) {
	_, err := LoadFile("/nonexistent/products.json")
	assert.Error(t, err)
}

func TestNew_Validation(t *testing.T) {
	valid := domain.Product{ID: "p1", Title: "Widget", Price: 9.99, Category: domain.CategoryHome}

	tests := []struct {
		name     string
		products []domain.Product
		wantErr  string
	}{
		{
			name:     "duplicate id",
			products: []domain.Product{valid, valid},
			wantErr:  "duplicate product id",
		},
		{
			name:     "empty id",
			products: []domain.Product{{Title: "Widget", Price: 1, Category: domain.CategoryHome}},
			wantErr:  "empty id",
		},
		{
			name:     "zero price",
			products: []domain.Product{{ID: "p1", Title: "Widget", Price: 0, Category: domain.CategoryHome}},
			wantErr:  "non-positive price",
		},
		{
			name:     "unknown category",
			products: []domain.Product{{ID: "p1", Title: "Widget", Price: 1, Category: "Garden"}},
			wantErr:  "unknown category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.products)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCatalog_ByID(t *testing.T) {
	c, err := LoadFile("")
	require.NoError(t, err)

	first := c.All()[0]
	got, err := c.ByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	_, err = c.ByID("missing")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Status)
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c, err := LoadFile("")
	require.NoError(t, err)

	all := c.All()
	originalTitle := all[0].Title
	all[0].Title = "mutated"

	fresh, err := c.ByID(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, originalTitle, fresh.Title)
}

func TestLoad_BadJSON(t *testing.T) {
	_, err := Load([]byte("{not json"))
	assert.Error(t, err)
}

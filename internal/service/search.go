package service

import (
	"context"
	"log/slog"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/search"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// SearchService runs catalog searches. The catalog is static, so every
// search is a pure pass over the full product list.
type SearchService struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(cat *catalog.Catalog, logger *slog.Logger) *SearchService {
	return &SearchService{catalog: cat, logger: logger}
}

// Search filters and orders the catalog. Unknown categories, price ranges,
// and sorts are rejected rather than silently ignored.
func (s *SearchService) Search(ctx context.Context, params search.Params) ([]domain.Product, error) {
	if params.Category != "" && params.Category != search.CategoryAll && !domain.IsValidCategory(params.Category) {
		return nil, apperrors.InvalidInput("unknown category: " + params.Category)
	}
	if !search.IsValidPriceRange(params.PriceRange) {
		return nil, apperrors.InvalidInput("unknown price range: " + params.PriceRange)
	}
	if !search.IsValidSort(params.Sort) {
		return nil, apperrors.InvalidInput("unknown sort: " + params.Sort)
	}

	results := search.Filter(s.catalog.All(), params)

	s.logger.DebugContext(ctx, "catalog search",
		slog.String("query", params.Query),
		slog.String("category", params.Category),
		slog.Int("results", len(results)),
	)

	return results, nil
}

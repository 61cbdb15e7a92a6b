package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/search"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
)

// SearchHandler handles HTTP requests for catalog search.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{service: svc, logger: logger}
}

// SearchResult is the JSON payload for a search response.
type SearchResult struct {
	Products any `json:"products"`
	Count    int `json:"count"`
}

// Search handles GET /api/v1/search
//
// Query parameters: q, category, price, prime, sort.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := search.Params{
		Query:      q.Get("q"),
		Category:   q.Get("category"),
		PriceRange: q.Get("price"),
		PrimeOnly:  q.Get("prime") == "true",
		Sort:       q.Get("sort"),
	}

	products, err := h.service.Search(r.Context(), params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: SearchResult{
		Products: products,
		Count:    len(products),
	}})
}

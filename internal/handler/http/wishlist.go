package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{service: svc, logger: logger}
}

// SaveItemRequest is the JSON request body for saving a product.
type SaveItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistView is the wishlist response payload.
type WishlistView struct {
	SessionKey string                `json:"session_key"`
	Items      []domain.WishlistItem `json:"items"`
	Count      int                   `json:"count"`
}

func wishlistView(wl *domain.Wishlist) WishlistView {
	return WishlistView{
		SessionKey: wl.SessionKey,
		Items:      wl.Items,
		Count:      wl.Count(),
	}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sessionKey, _ := sessionKeyFromContext(r.Context())

	wl, err := h.service.GetWishlist(r.Context(), sessionKey)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistView(wl)})
}

// AddItem handles POST /api/v1/wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionKey, _ := sessionKeyFromContext(r.Context())

	var req SaveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	wl, err := h.service.AddItem(r.Context(), sessionKey, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistView(wl)})
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionKey, _ := sessionKeyFromContext(r.Context())
	productID := chi.URLParam(r, "productId")

	wl, err := h.service.RemoveItem(r.Context(), sessionKey, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistView(wl)})
}

// HasItem handles GET /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) HasItem(w http.ResponseWriter, r *http.Request) {
	sessionKey, _ := sessionKeyFromContext(r.Context())
	productID := chi.URLParam(r, "productId")

	saved, err := h.service.Has(r.Context(), sessionKey, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"saved": saved}})
}

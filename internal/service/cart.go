// Package service implements the business logic for the storefront. Each
// service depends on the storage ports in internal/repository and publishes
// domain events on state changes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single line.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct lines in a cart.
	MaxItemsPerCart = 50
)

// CartService implements the business logic for cart operations.
type CartService struct {
	repo     repository.CartRepository
	catalog  *catalog.Catalog
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, cat *catalog.Catalog, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a session. A missing or corrupt record
// yields an empty cart rather than an error.
func (s *CartService) GetCart(ctx context.Context, sessionKey string) (*domain.Cart, error) {
	if sessionKey == "" {
		return nil, apperrors.InvalidInput("session key is required")
	}
	return s.loadCart(ctx, sessionKey)
}

// AddItem adds a catalog product to the session's cart. When a line for the
// product already exists, quantities merge and the price captured at the
// original add time is kept.
func (s *CartService) AddItem(ctx context.Context, sessionKey, productID string, quantity int) (*domain.Cart, error) {
	if sessionKey == "" {
		return nil, apperrors.InvalidInput("session key is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity <= 0 {
		quantity = 1
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	product, err := s.catalog.ByID(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadCart(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if i := cart.FindItemIndex(productID); i >= 0 {
		newQty := cart.Items[i].Quantity + quantity
		if newQty > MaxQuantityPerItem {
			return nil, apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerItem))
		}
		cart.Items[i].Quantity = newQty
	} else {
		if len(cart.Items) >= MaxItemsPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Image:     product.PrimaryImage(),
			Quantity:  quantity,
		})
	}

	cart.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_key", sessionKey),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity for a cart line. A quantity below one
// removes the line. Updating an absent line leaves the cart unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionKey, productID string, quantity int) (*domain.Cart, error) {
	if sessionKey == "" {
		return nil, apperrors.InvalidInput("session key is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	cart, err := s.loadCart(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	i := cart.FindItemIndex(productID)
	if i < 0 {
		return cart, nil
	}

	if quantity < 1 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}

	cart.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("session_key", sessionKey),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem removes a cart line. Removing an absent line leaves the cart
// unchanged.
func (s *CartService) RemoveItem(ctx context.Context, sessionKey, productID string) (*domain.Cart, error) {
	if sessionKey == "" {
		return nil, apperrors.InvalidInput("session key is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.loadCart(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	i := cart.FindItemIndex(productID)
	if i < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	cart.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_key", sessionKey),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// ClearCart removes every line from the session's cart. Reason is recorded
// on the published event.
func (s *CartService) ClearCart(ctx context.Context, sessionKey, reason string) error {
	if sessionKey == "" {
		return apperrors.InvalidInput("session key is required")
	}

	if err := s.repo.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionKey, reason); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_key", sessionKey),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_key", sessionKey),
		slog.String("reason", reason),
	)

	return nil
}

// loadCart fetches the stored cart. Absent and corrupt records both fall
// back to an empty cart; transport failures propagate.
func (s *CartService) loadCart(ctx context.Context, sessionKey string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionKey), nil
		}
		if errors.Is(err, repository.ErrCorrupt) {
			s.logger.WarnContext(ctx, "discarding corrupt cart record",
				slog.String("session_key", sessionKey),
			)
			return s.newEmptyCart(sessionKey), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) newEmptyCart(sessionKey string) *domain.Cart {
	return &domain.Cart{
		SessionKey: sessionKey,
		Items:      []domain.CartItem{},
		UpdatedAt:  time.Now().UTC(),
	}
}

func (s *CartService) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_key", cart.SessionKey),
			slog.String("error", err.Error()),
		)
	}
}

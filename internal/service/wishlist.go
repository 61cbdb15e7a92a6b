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

// MaxWishlistItems is the maximum number of saved products per session.
const MaxWishlistItems = 200

// WishlistService implements the business logic for wishlist operations.
type WishlistService struct {
	repo     repository.WishlistRepository
	catalog  *catalog.Catalog
	producer *event.Producer
	logger   *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.WishlistRepository, cat *catalog.Catalog, producer *event.Producer, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		logger:   logger,
	}
}

// GetWishlist retrieves the wishlist for a session. A missing or corrupt
// record yields an empty wishlist rather than an error.
func (s *WishlistService) GetWishlist(ctx context.Context, sessionKey string) (*domain.Wishlist, error) {
	if sessionKey == "" {
		return nil, apperrors.InvalidInput("session key is required")
	}
	return s.loadWishlist(ctx, sessionKey)
}

// AddItem saves a catalog product. Adding a product that is already saved
// is idempotent and leaves the wishlist unchanged.
func (s *WishlistService) AddItem(ctx context.Context, sessionKey, productID string) (*domain.Wishlist, error) {
	if sessionKey == "" {
		return nil, apperrors.InvalidInput("session key is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.catalog.ByID(productID)
	if err != nil {
		return nil, err
	}

	wishlist, err := s.loadWishlist(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if wishlist.Has(productID) {
		return wishlist, nil
	}
	if wishlist.Count() >= MaxWishlistItems {
		return nil, apperrors.InvalidInput(fmt.Sprintf("wishlist must not contain more than %d items", MaxWishlistItems))
	}

	wishlist.Items = append(wishlist.Items, domain.WishlistItem{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Image:     product.PrimaryImage(),
		Rating:    product.Rating,
		Reviews:   product.Reviews,
	})
	wishlist.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, wishlist); err != nil {
		return nil, fmt.Errorf("save wishlist: %w", err)
	}

	s.publishWishlistUpdated(ctx, wishlist)

	s.logger.InfoContext(ctx, "item added to wishlist",
		slog.String("session_key", sessionKey),
		slog.String("product_id", productID),
	)

	return wishlist, nil
}

// RemoveItem unsaves a product. Removing an absent product leaves the
// wishlist unchanged.
func (s *WishlistService) RemoveItem(ctx context.Context, sessionKey, productID string) (*domain.Wishlist, error) {
	if sessionKey == "" {
		return nil, apperrors.InvalidInput("session key is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	wishlist, err := s.loadWishlist(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	i := wishlist.FindIndex(productID)
	if i < 0 {
		return wishlist, nil
	}

	wishlist.Items = append(wishlist.Items[:i], wishlist.Items[i+1:]...)
	wishlist.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, wishlist); err != nil {
		return nil, fmt.Errorf("save wishlist: %w", err)
	}

	s.publishWishlistUpdated(ctx, wishlist)

	s.logger.InfoContext(ctx, "item removed from wishlist",
		slog.String("session_key", sessionKey),
		slog.String("product_id", productID),
	)

	return wishlist, nil
}

// Has reports whether the session has saved the given product.
func (s *WishlistService) Has(ctx context.Context, sessionKey, productID string) (bool, error) {
	wishlist, err := s.GetWishlist(ctx, sessionKey)
	if err != nil {
		return false, err
	}
	return wishlist.Has(productID), nil
}

func (s *WishlistService) loadWishlist(ctx context.Context, sessionKey string) (*domain.Wishlist, error) {
	wishlist, err := s.repo.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyWishlist(sessionKey), nil
		}
		if errors.Is(err, repository.ErrCorrupt) {
			s.logger.WarnContext(ctx, "discarding corrupt wishlist record",
				slog.String("session_key", sessionKey),
			)
			return s.newEmptyWishlist(sessionKey), nil
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return wishlist, nil
}

func (s *WishlistService) newEmptyWishlist(sessionKey string) *domain.Wishlist {
	return &domain.Wishlist{
		SessionKey: sessionKey,
		Items:      []domain.WishlistItem{},
		UpdatedAt:  time.Now().UTC(),
	}
}

func (s *WishlistService) publishWishlistUpdated(ctx context.Context, wishlist *domain.Wishlist) {
	if err := s.producer.PublishWishlistUpdated(ctx, wishlist); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("session_key", wishlist.SessionKey),
			slog.String("error", err.Error()),
		)
	}
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const (
	wishlistKeyPrefix = "storefront:wishlist:"
	wishlistSchema    = 1
)

type wishlistRecord struct {
	Schema    int                   `json:"schema"`
	Items     []domain.WishlistItem `json:"items"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// WishlistRepository implements repository.WishlistRepository using Redis.
type WishlistRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWishlistRepository creates a Redis-backed wishlist repository.
func NewWishlistRepository(client *redis.Client, ttl time.Duration) *WishlistRepository {
	return &WishlistRepository{client: client, ttl: ttl}
}

// Get retrieves a wishlist by session key.
func (r *WishlistRepository) Get(ctx context.Context, sessionKey string) (*domain.Wishlist, error) {
	key := wishlistKeyPrefix + sessionKey

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("wishlist", sessionKey)
		}
		return nil, fmt.Errorf("redis get wishlist: %w", err)
	}

	var rec wishlistRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode wishlist record: %w", repository.ErrCorrupt)
	}
	if rec.Schema != wishlistSchema {
		return nil, fmt.Errorf("wishlist schema %d: %w", rec.Schema, repository.ErrCorrupt)
	}

	return &domain.Wishlist{
		SessionKey: sessionKey,
		Items:      rec.Items,
		UpdatedAt:  rec.UpdatedAt,
	}, nil
}

// Save persists a wishlist with the configured TTL.
func (r *WishlistRepository) Save(ctx context.Context, wishlist *domain.Wishlist) error {
	key := wishlistKeyPrefix + wishlist.SessionKey

	data, err := json.Marshal(wishlistRecord{
		Schema:    wishlistSchema,
		Items:     wishlist.Items,
		UpdatedAt: wishlist.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set wishlist: %w", err)
	}

	return nil
}

// Delete removes a wishlist. Deleting an absent wishlist is not an error.
func (r *WishlistRepository) Delete(ctx context.Context, sessionKey string) error {
	key := wishlistKeyPrefix + sessionKey

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del wishlist: %w", err)
	}

	return nil
}

// Package redis implements the storage ports on a Redis key-value store.
// Each record is stored as a JSON envelope carrying a schema version; a
// record with an unknown version or undecodable body is reported as
// repository.ErrCorrupt so callers can treat it as absent.
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
	cartKeyPrefix = "storefront:cart:"
	cartSchema    = 1
)

type cartRecord struct {
	Schema    int               `json:"schema"`
	Items     []domain.CartItem `json:"items"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CartRepository implements repository.CartRepository using Redis.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

// Get retrieves a cart by session key.
func (r *CartRepository) Get(ctx context.Context, sessionKey string) (*domain.Cart, error) {
	key := cartKeyPrefix + sessionKey

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", sessionKey)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var rec cartRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode cart record: %w", repository.ErrCorrupt)
	}
	if rec.Schema != cartSchema {
		return nil, fmt.Errorf("cart schema %d: %w", rec.Schema, repository.ErrCorrupt)
	}

	return &domain.Cart{
		SessionKey: sessionKey,
		Items:      rec.Items,
		UpdatedAt:  rec.UpdatedAt,
	}, nil
}

// Save persists a cart with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	key := cartKeyPrefix + cart.SessionKey

	data, err := json.Marshal(cartRecord{
		Schema:    cartSchema,
		Items:     cart.Items,
		UpdatedAt: cart.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// Delete removes a cart. Deleting an absent cart is not an error.
func (r *CartRepository) Delete(ctx context.Context, sessionKey string) error {
	key := cartKeyPrefix + sessionKey

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}

	return nil
}

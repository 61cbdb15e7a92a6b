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
	checkoutKeyPrefix = "storefront:checkout:"
	checkoutSchema    = 1
)

type checkoutRecord struct {
	Schema  int                     `json:"schema"`
	Session *domain.CheckoutSession `json:"session"`
}

// CheckoutRepository implements repository.CheckoutRepository using Redis.
// Checkout state is short-lived, so the TTL is typically much shorter than
// the cart TTL.
type CheckoutRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCheckoutRepository creates a Redis-backed checkout repository.
func NewCheckoutRepository(client *redis.Client, ttl time.Duration) *CheckoutRepository {
	return &CheckoutRepository{client: client, ttl: ttl}
}

// Get retrieves an in-progress checkout by session key.
func (r *CheckoutRepository) Get(ctx context.Context, sessionKey string) (*domain.CheckoutSession, error) {
	key := checkoutKeyPrefix + sessionKey

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("checkout", sessionKey)
		}
		return nil, fmt.Errorf("redis get checkout: %w", err)
	}

	var rec checkoutRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode checkout record: %w", repository.ErrCorrupt)
	}
	if rec.Schema != checkoutSchema || rec.Session == nil {
		return nil, fmt.Errorf("checkout schema %d: %w", rec.Schema, repository.ErrCorrupt)
	}

	rec.Session.SessionKey = sessionKey
	return rec.Session, nil
}

// Save persists a checkout session with the configured TTL.
func (r *CheckoutRepository) Save(ctx context.Context, session *domain.CheckoutSession) error {
	key := checkoutKeyPrefix + session.SessionKey

	data, err := json.Marshal(checkoutRecord{
		Schema:  checkoutSchema,
		Session: session,
	})
	if err != nil {
		return fmt.Errorf("marshal checkout: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set checkout: %w", err)
	}

	return nil
}

// Delete removes a checkout session. Deleting an absent session is not an
// error.
func (r *CheckoutRepository) Delete(ctx context.Context, sessionKey string) error {
	key := checkoutKeyPrefix + sessionKey

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del checkout: %w", err)
	}

	return nil
}

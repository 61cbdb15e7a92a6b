// Package repository defines the storage ports for session-scoped state.
// Implementations live in subpackages; services depend only on these
// interfaces.
package repository

import (
	"context"
	"errors"

	"github.com/utafrali/storefront/internal/domain"
)

// ErrCorrupt marks a stored record that could not be decoded or carries an
// unknown schema version. Callers treat corrupt state as absent.
var ErrCorrupt = errors.New("stored record is corrupt")

// CartRepository persists one cart per session key.
type CartRepository interface {
	Get(ctx context.Context, sessionKey string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, sessionKey string) error
}

// WishlistRepository persists one wishlist per session key.
type WishlistRepository interface {
	Get(ctx context.Context, sessionKey string) (*domain.Wishlist, error)
	Save(ctx context.Context, wishlist *domain.Wishlist) error
	Delete(ctx context.Context, sessionKey string) error
}

// CheckoutRepository persists one in-progress checkout per session key.
type CheckoutRepository interface {
	Get(ctx context.Context, sessionKey string) (*domain.CheckoutSession, error)
	Save(ctx context.Context, session *domain.CheckoutSession) error
	Delete(ctx context.Context, sessionKey string) error
}

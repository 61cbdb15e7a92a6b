package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func wishlistWithItem(sessionKey string) *domain.Wishlist {
	return &domain.Wishlist{
		SessionKey: sessionKey,
		Items: []domain.WishlistItem{
			{ProductID: "elec-001", Title: "Headphones", Price: 149.99, Rating: 4.6, Reviews: 8412},
		},
		UpdatedAt: time.Now().UTC(),
	}
}

func TestGetWishlist_Empty(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("wishlist", "sess-1"))

	wl, err := svc.GetWishlist(ctx, "sess-1")

	require.NoError(t, err)
	assert.Equal(t, 0, wl.Count())
}

func TestWishlistAddItem_CapturesProductData(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(nil, apperrors.NotFound("wishlist", "sess-1"))
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Wishlist")).Return(nil)

	wl, err := svc.AddItem(ctx, "sess-1", "home-001")

	require.NoError(t, err)
	require.Equal(t, 1, wl.Count())
	assert.Equal(t, "Dutch Oven", wl.Items[0].Title)
	assert.Equal(t, 79.95, wl.Items[0].Price)
	assert.Equal(t, 4.9, wl.Items[0].Rating)
	assert.Equal(t, 11203, wl.Items[0].Reviews)
}

func TestWishlistAddItem_Idempotent(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(wishlistWithItem("sess-1"), nil)

	wl, err := svc.AddItem(ctx, "sess-1", "elec-001")

	require.NoError(t, err)
	assert.Equal(t, 1, wl.Count())
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWishlistAddItem_UnknownProduct(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(t, repo)
	ctx := context.Background()

	wl, err := svc.AddItem(ctx, "sess-1", "missing")

	assert.Nil(t, wl)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWishlistRemoveItem(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(wishlistWithItem("sess-1"), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Wishlist")).Return(nil)

	wl, err := svc.RemoveItem(ctx, "sess-1", "elec-001")

	require.NoError(t, err)
	assert.Equal(t, 0, wl.Count())
}

func TestWishlistRemoveItem_AbsentIsNoOp(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(wishlistWithItem("sess-1"), nil)

	wl, err := svc.RemoveItem(ctx, "sess-1", "missing")

	require.NoError(t, err)
	assert.Equal(t, 1, wl.Count())
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWishlistHas(t *testing.T) {
	repo := new(mockWishlistRepository)
	svc := newTestWishlistService(t, repo)
	ctx := context.Background()

	repo.On("Get", ctx, "sess-1").Return(wishlistWithItem("sess-1"), nil)

	has, err := svc.Has(ctx, "sess-1", "elec-001")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.Has(ctx, "sess-1", "book-001")
	require.NoError(t, err)
	assert.False(t, has)
}

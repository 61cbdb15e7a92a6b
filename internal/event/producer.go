// Package event publishes storefront domain events to Kafka. Publishing is
// best effort; callers log failures and carry on, events never block a
// storefront operation.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated     = "storefront.cart.updated"
	TopicCartCleared     = "storefront.cart.cleared"
	TopicWishlistUpdated = "storefront.wishlist.updated"
	TopicOrderPlaced     = "storefront.order.placed"
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
	AggregateTypeOrder    = "order"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionKey string         `json:"session_key"`
	Items      []CartItemData `json:"items"`
	ItemCount  int            `json:"item_count"`
	Subtotal   float64        `json:"subtotal"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionKey string `json:"session_key"`
	Reason     string `json:"reason"`
}

// WishlistUpdatedData is the payload for a wishlist.updated event.
type WishlistUpdatedData struct {
	SessionKey string   `json:"session_key"`
	ProductIDs []string `json:"product_ids"`
	Count      int      `json:"count"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	SessionKey    string             `json:"session_key"`
	OrderID       string             `json:"order_id"`
	PaymentMethod string             `json:"payment_method"`
	Items         []CartItemData     `json:"items"`
	Totals        domain.OrderTotals `json:"totals"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func cartItemData(items []domain.CartItem) []CartItemData {
	out := make([]CartItemData, len(items))
	for i, item := range items {
		out[i] = CartItemData{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}
	return out
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		SessionKey: cart.SessionKey,
		Items:      cartItemData(cart.Items),
		ItemCount:  cart.ItemCount(),
		Subtotal:   cart.Subtotal(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionKey, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_key", cart.SessionKey),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event. Reason distinguishes
// an explicit clear from the post-order clear.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionKey, reason string) error {
	data := CartClearedData{SessionKey: sessionKey, Reason: reason}

	event, err := pkgkafka.NewEvent(TopicCartCleared, sessionKey, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_key", sessionKey),
		slog.String("reason", reason),
	)

	return nil
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, wishlist *domain.Wishlist) error {
	ids := make([]string, len(wishlist.Items))
	for i, item := range wishlist.Items {
		ids[i] = item.ProductID
	}
	data := WishlistUpdatedData{
		SessionKey: wishlist.SessionKey,
		ProductIDs: ids,
		Count:      wishlist.Count(),
	}

	event, err := pkgkafka.NewEvent(TopicWishlistUpdated, wishlist.SessionKey, AggregateTypeWishlist, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create wishlist.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWishlistUpdated, event); err != nil {
		return fmt.Errorf("publish wishlist.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wishlist.updated event",
		slog.String("session_key", wishlist.SessionKey),
		slog.Int("count", wishlist.Count()),
	)

	return nil
}

// PublishOrderPlaced publishes an order.placed event keyed by the order ID.
func (p *Producer) PublishOrderPlaced(ctx context.Context, session *domain.CheckoutSession, cart *domain.Cart) error {
	data := OrderPlacedData{
		SessionKey:    session.SessionKey,
		OrderID:       session.OrderID,
		PaymentMethod: session.PaymentMethod,
		Items:         cartItemData(cart.Items),
		Totals:        session.Totals,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, session.OrderID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.InfoContext(ctx, "published order.placed event",
		slog.String("session_key", session.SessionKey),
		slog.String("order_id", session.OrderID),
	)

	return nil
}

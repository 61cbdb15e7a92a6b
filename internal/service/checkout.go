package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/validator"
)

// DefaultClearDelay is how long after order confirmation the cart is
// cleared. The confirmation response is built from the pre-clear cart, so
// the delay only has to outlive the response write.
const DefaultClearDelay = 100 * time.Millisecond

// ErrCartEmpty is returned when a checkout operation requires a non-empty
// cart. Confirmation is exempt; the cart is expected to be empty there.
var ErrCartEmpty = &apperrors.AppError{
	Code:    "CART_EMPTY",
	Message: "cart is empty",
	Status:  409,
	Err:     apperrors.ErrConflict,
}

// Scheduler defers fn by delay and returns a cancel function reporting
// whether the run was prevented. Production uses time.AfterFunc.
type Scheduler func(delay time.Duration, fn func()) (cancel func() bool)

func timerScheduler(delay time.Duration, fn func()) func() bool {
	t := time.AfterFunc(delay, fn)
	return t.Stop
}

// CheckoutService drives the four-step checkout flow: shipping, payment,
// review, confirmation.
type CheckoutService struct {
	repo       repository.CheckoutRepository
	cart       *CartService
	producer   *event.Producer
	logger     *slog.Logger
	schedule   Scheduler
	clearDelay time.Duration
}

// NewCheckoutService creates a new checkout service with the default
// deferred-clear scheduler.
func NewCheckoutService(repo repository.CheckoutRepository, cart *CartService, producer *event.Producer, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		repo:       repo,
		cart:       cart,
		producer:   producer,
		logger:     logger,
		schedule:   timerScheduler,
		clearDelay: DefaultClearDelay,
	}
}

// WithScheduler replaces the deferred-clear scheduler. Tests use a
// synchronous scheduler to make the clear observable without sleeping.
func (s *CheckoutService) WithScheduler(schedule Scheduler, delay time.Duration) *CheckoutService {
	s.schedule = schedule
	s.clearDelay = delay
	return s
}

// Begin starts a checkout at the shipping step. An existing non-terminal
// checkout for the session is resumed rather than restarted; a terminal one
// is replaced. The cart must not be empty.
func (s *CheckoutService) Begin(ctx context.Context, sessionKey string) (*domain.CheckoutSession, error) {
	if sessionKey == "" {
		return nil, apperrors.InvalidInput("session key is required")
	}

	if err := s.requireNonEmptyCart(ctx, sessionKey); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, sessionKey)
	if err == nil && !existing.IsTerminal() {
		return existing, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, repository.ErrCorrupt) {
		return nil, fmt.Errorf("get checkout: %w", err)
	}

	session := domain.NewCheckoutSession(sessionKey, time.Now().UTC())
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save checkout: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout started",
		slog.String("session_key", sessionKey),
	)

	return session, nil
}

// Get retrieves the session's in-progress checkout.
func (s *CheckoutService) Get(ctx context.Context, sessionKey string) (*domain.CheckoutSession, error) {
	if sessionKey == "" {
		return nil, apperrors.InvalidInput("session key is required")
	}

	session, err := s.repo.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, repository.ErrCorrupt) {
			return nil, apperrors.NotFound("checkout", sessionKey)
		}
		return nil, err
	}
	return session, nil
}

// SubmitShipping validates the shipping form and advances to the payment
// step. Validation failures return *validator.ValidationError with
// per-field messages.
func (s *CheckoutService) SubmitShipping(ctx context.Context, sessionKey string, info domain.ShippingInfo) (*domain.CheckoutSession, error) {
	session, err := s.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if err := s.requireNonEmptyCart(ctx, sessionKey); err != nil {
		return nil, err
	}

	if err := validator.Validate(info); err != nil {
		return nil, err
	}

	if err := session.AdvanceToPayment(info, time.Now().UTC()); err != nil {
		return nil, s.transitionError(err)
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save checkout: %w", err)
	}

	s.logger.InfoContext(ctx, "shipping submitted",
		slog.String("session_key", sessionKey),
	)

	return session, nil
}

// SelectPayment records the payment method and advances to the review step.
func (s *CheckoutService) SelectPayment(ctx context.Context, sessionKey, method string) (*domain.CheckoutSession, error) {
	session, err := s.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if err := s.requireNonEmptyCart(ctx, sessionKey); err != nil {
		return nil, err
	}

	if err := session.AdvanceToReview(method, time.Now().UTC()); err != nil {
		return nil, s.transitionError(err)
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save checkout: %w", err)
	}

	s.logger.InfoContext(ctx, "payment method selected",
		slog.String("session_key", sessionKey),
		slog.String("method", method),
	)

	return session, nil
}

// Back returns the checkout to an earlier step, retaining entered data. An
// empty target moves one step backwards; from review either prior step may
// be targeted.
func (s *CheckoutService) Back(ctx context.Context, sessionKey, target string) (*domain.CheckoutSession, error) {
	session, err := s.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if err := s.requireNonEmptyCart(ctx, sessionKey); err != nil {
		return nil, err
	}

	if err := session.GoBack(target, time.Now().UTC()); err != nil {
		return nil, s.transitionError(err)
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save checkout: %w", err)
	}

	return session, nil
}

// PlaceOrder confirms the order from the review step. It prices the cart,
// assigns an order ID, publishes order.placed, and schedules the deferred
// cart clear. The returned session already shows the confirmation step with
// totals computed from the cart as it stood at confirmation time.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionKey string) (*domain.CheckoutSession, error) {
	session, err := s.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	cart, err := s.cart.GetCart(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	orderID := uuid.New().String()
	totals := domain.ComputeTotals(cart.Subtotal())

	if err := session.Confirm(orderID, totals, time.Now().UTC()); err != nil {
		return nil, s.transitionError(err)
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save checkout: %w", err)
	}

	if err := s.producer.PublishOrderPlaced(ctx, session, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("session_key", sessionKey),
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	// The clear runs detached from the request context so the confirmation
	// response can be built from the still-populated cart.
	logger := s.logger
	clearFn := func() {
		clearCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.cart.ClearCart(clearCtx, sessionKey, "order_placed"); err != nil {
			logger.Error("deferred cart clear failed",
				slog.String("session_key", sessionKey),
				slog.String("order_id", orderID),
				slog.String("error", err.Error()),
			)
		}
	}
	s.schedule(s.clearDelay, clearFn)

	s.logger.InfoContext(ctx, "order placed",
		slog.String("session_key", sessionKey),
		slog.String("order_id", orderID),
		slog.String("payment_method", session.PaymentMethod),
	)

	return session, nil
}

// Cancel abandons the session's checkout. The cart is untouched.
func (s *CheckoutService) Cancel(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return apperrors.InvalidInput("session key is required")
	}

	if err := s.repo.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("delete checkout: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout abandoned",
		slog.String("session_key", sessionKey),
	)

	return nil
}

func (s *CheckoutService) requireNonEmptyCart(ctx context.Context, sessionKey string) error {
	cart, err := s.cart.GetCart(ctx, sessionKey)
	if err != nil {
		return err
	}
	if cart.IsEmpty() {
		return ErrCartEmpty
	}
	return nil
}

func (s *CheckoutService) transitionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return apperrors.Conflict(err.Error())
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return apperrors.InvalidInput(err.Error())
	default:
		return err
	}
}

package domain

import (
	"errors"
	"time"
)

// Checkout steps, in order. A session starts at shipping and advances one
// step at a time; confirmation is terminal.
const (
	StepShipping     = "shipping"
	StepPayment      = "payment"
	StepReview       = "review"
	StepConfirmation = "confirmation"
)

// Payment methods accepted at the payment step.
const (
	PaymentCard   = "card"
	PaymentPayPal = "paypal"
	PaymentCOD    = "cod"
)

// TaxRate is applied to the cart subtotal when an order is placed.
const TaxRate = 0.05

var (
	// ErrInvalidTransition is returned when an operation is attempted from
	// the wrong checkout step.
	ErrInvalidTransition = errors.New("invalid checkout transition")

	// ErrInvalidPaymentMethod is returned for an unknown payment method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// ShippingInfo is the address form collected at the shipping step.
type ShippingInfo struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required,min=5"`
	City     string `json:"city" validate:"required,min=2"`
	State    string `json:"state" validate:"required,min=2"`
	Zip      string `json:"zip" validate:"required,len=5,numeric"`
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
}

// OrderTotals is the priced breakdown computed when an order is placed.
type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CheckoutSession tracks one in-progress checkout for a browsing session.
// Step transitions are enforced here; pricing and cart interaction live in
// the service layer.
type CheckoutSession struct {
	SessionKey    string       `json:"session_key"`
	Step          string       `json:"step"`
	Shipping      ShippingInfo `json:"shipping"`
	PaymentMethod string       `json:"payment_method"`
	OrderID       string       `json:"order_id,omitempty"`
	Totals        OrderTotals  `json:"totals"`
	StartedAt     time.Time    `json:"started_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NewCheckoutSession starts a checkout at the shipping step with the
// default payment method preselected.
func NewCheckoutSession(sessionKey string, now time.Time) *CheckoutSession {
	return &CheckoutSession{
		SessionKey:    sessionKey,
		Step:          StepShipping,
		PaymentMethod: PaymentCard,
		StartedAt:     now,
		UpdatedAt:     now,
	}
}

// IsValidPaymentMethod checks whether the given method is accepted.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCard, PaymentPayPal, PaymentCOD:
		return true
	}
	return false
}

// IsTerminal reports whether the session has reached confirmation.
func (s *CheckoutSession) IsTerminal() bool {
	return s.Step == StepConfirmation
}

// AdvanceToPayment records the shipping info and moves to the payment step.
// Only valid from the shipping step.
func (s *CheckoutSession) AdvanceToPayment(info ShippingInfo, now time.Time) error {
	if s.Step != StepShipping {
		return ErrInvalidTransition
	}
	s.Shipping = info
	s.Step = StepPayment
	s.UpdatedAt = now
	return nil
}

// AdvanceToReview records the payment method and moves to the review step.
// Only valid from the payment step.
func (s *CheckoutSession) AdvanceToReview(method string, now time.Time) error {
	if s.Step != StepPayment {
		return ErrInvalidTransition
	}
	if !IsValidPaymentMethod(method) {
		return ErrInvalidPaymentMethod
	}
	s.PaymentMethod = method
	s.Step = StepReview
	s.UpdatedAt = now
	return nil
}

// GoBack returns the checkout to an earlier step. An empty target moves one
// step backwards; from review either prior step may be targeted directly.
// Entered data is retained so the forward path sees it again. Going back
// from shipping or confirmation is invalid.
func (s *CheckoutSession) GoBack(target string, now time.Time) error {
	switch s.Step {
	case StepPayment:
		if target != "" && target != StepShipping {
			return ErrInvalidTransition
		}
		s.Step = StepShipping
	case StepReview:
		switch target {
		case "", StepPayment:
			s.Step = StepPayment
		case StepShipping:
			s.Step = StepShipping
		default:
			return ErrInvalidTransition
		}
	default:
		return ErrInvalidTransition
	}
	s.UpdatedAt = now
	return nil
}

// Confirm assigns the order ID and totals and moves to confirmation.
// Only valid from the review step.
func (s *CheckoutSession) Confirm(orderID string, totals OrderTotals, now time.Time) error {
	if s.Step != StepReview {
		return ErrInvalidTransition
	}
	s.OrderID = orderID
	s.Totals = totals
	s.Step = StepConfirmation
	s.UpdatedAt = now
	return nil
}

// ComputeTotals prices an order from the cart subtotal. Shipping is free
// across the board.
func ComputeTotals(subtotal float64) OrderTotals {
	tax := subtotal * TaxRate
	return OrderTotals{
		Subtotal: subtotal,
		Shipping: 0,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Package gateway connects a payment intent to the hosted Razorpay checkout.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecoplaster/storefront/internal/backend"
	"github.com/ecoplaster/storefront/internal/config"
	appErrors "github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/pkg/razorpay"
)

const (
	SessionNotFoundMessage = "Payment session not found. Please return to checkout."
	IntentExpiredMessage   = "This payment session has expired. Redirecting you to checkout..."
	defaultFailureMessage  = "Payment failed. Please try again."
)

// Checkout is the part of the hosted checkout the bridge drives.
type Checkout interface {
	Open(orderID string) (*razorpay.Attempt, error)
	Succeed(orderID string, payment razorpay.Payment) error
	Fail(orderID string, failure razorpay.Failure) error
	Dismiss(orderID string) error
	Abandon(orderID string) bool
}

// Session is an opened attempt plus what the browser needs to show the checkout.
type Session struct {
	Attempt *razorpay.Attempt
	Options models.CheckoutOptions
}

type Bridge struct {
	backend       backend.Backend
	checkout      Checkout
	razorpay      config.Razorpay
	checkoutPath  string
	redirectDelay time.Duration
}

func NewBridge(b backend.Backend, checkout Checkout, rzp config.Razorpay, co config.Checkout) *Bridge {
	return &Bridge{
		backend:       b,
		checkout:      checkout,
		razorpay:      rzp,
		checkoutPath:  co.CheckoutPath,
		redirectDelay: co.ExpiredRedirectDelay,
	}
}

// LoadIntent fetches the intent and refuses expired or missing ones with a redirect back to checkout.
func (b *Bridge) LoadIntent(ctx context.Context, intentID string) (*models.PaymentIntent, error) {
	intent, err := b.backend.GetPaymentIntent(ctx, intentID)
	if err != nil {
		return nil, appErrors.NotFoundError(SessionNotFoundMessage).
			WithError(err).
			WithRedirect(b.checkoutPath, 0)
	}

	if intent.IsExpired() {
		return nil, appErrors.IntentExpiredError(IntentExpiredMessage).
			WithRedirect(b.checkoutPath, b.redirectDelay)
	}

	return intent, nil
}

// Open creates a fresh gateway order for this attempt and registers it with the hosted checkout.
func (b *Bridge) Open(ctx context.Context, intent *models.PaymentIntent, user *models.Claims) (*Session, error) {
	order, err := b.backend.CreateGatewayOrder(ctx, &models.CreateGatewayOrderRequest{
		IntentID: intent.ID,
		UserID:   user.UserID,
		Amount:   intent.TotalAmount,
		Currency: b.razorpay.Currency,
		Notes:    map[string]string{"intentId": intent.ID},
	})
	if err != nil {
		return nil, backend.Translate(err)
	}

	attempt, err := b.checkout.Open(order.RazorpayOrderID)
	if err != nil {
		return nil, appErrors.ConflictError("A payment attempt is already open for this order").WithError(err)
	}

	return &Session{Attempt: attempt, Options: b.options(intent, order, user)}, nil
}

func (b *Bridge) options(intent *models.PaymentIntent, order *models.GatewayOrder, user *models.Claims) models.CheckoutOptions {
	key := order.Key
	if key == "" {
		key = b.razorpay.KeyID
	}

	currency := order.Currency
	if currency == "" {
		currency = b.razorpay.Currency
	}

	contact := user.Phone
	if contact == "" {
		contact = intent.ShippingAddress.PhoneNumber
	}

	return models.CheckoutOptions{
		Key:         key,
		Amount:      order.Amount,
		Currency:    currency,
		Name:        b.razorpay.BrandName,
		Description: "Order payment",
		OrderID:     order.RazorpayOrderID,
		Prefill: models.Prefill{
			Name:    user.Name,
			Email:   user.Email,
			Contact: contact,
		},
		Notes: map[string]string{"intentId": intent.ID},
	}
}

// Deliver hands a browser callback to the attempt waiting on gatewayOrderID.
func (b *Bridge) Deliver(gatewayOrderID string, event models.PaymentEvent) error {
	var err error

	switch event.Type {
	case models.PaymentEventSuccess:
		if event.Payment == nil || event.Payment.RazorpayPaymentID == "" || event.Payment.RazorpaySignature == "" {
			return appErrors.ValidationError("Payment confirmation payload is incomplete")
		}
		err = b.checkout.Succeed(gatewayOrderID, razorpay.Payment{
			OrderID:   event.Payment.RazorpayOrderID,
			PaymentID: event.Payment.RazorpayPaymentID,
			Signature: event.Payment.RazorpaySignature,
		})
	case models.PaymentEventFailed:
		failure := razorpay.Failure{Description: defaultFailureMessage}
		if e := event.Error; e != nil {
			failure = razorpay.Failure{
				Code:        e.Code,
				Description: e.Description,
				Source:      e.Source,
				Step:        e.Step,
				Reason:      e.Reason,
				PaymentID:   e.PaymentID,
			}
			if failure.Description == "" {
				failure.Description = defaultFailureMessage
			}
		}
		err = b.checkout.Fail(gatewayOrderID, failure)
	case models.PaymentEventDismissed:
		err = b.checkout.Dismiss(gatewayOrderID)
	default:
		return appErrors.ValidationError("Unknown payment event: " + string(event.Type))
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, razorpay.ErrUnknownAttempt):
		return appErrors.ConflictError("No payment attempt is in progress for this order").WithError(err)
	case errors.Is(err, razorpay.ErrOrderMismatch):
		return appErrors.BadRequestError("Payment does not belong to this order").WithError(err)
	default:
		return appErrors.InternalError("Failed to deliver payment event").WithError(err)
	}
}

func (b *Bridge) Abandon(gatewayOrderID string) bool {
	return b.checkout.Abandon(gatewayOrderID)
}

// ReportFailure tells the API about a gateway failure so its payment records stay in step.
func (b *Bridge) ReportFailure(ctx context.Context, gatewayOrderID string, failure *razorpay.Failure) error {
	err := b.backend.ReportPaymentFailure(ctx, &models.PaymentFailureReport{
		RazorpayOrderID:  gatewayOrderID,
		ErrorCode:        failure.Code,
		ErrorDescription: failure.Description,
	})
	if err != nil {
		return fmt.Errorf("report payment failure for %s: %w", gatewayOrderID, err)
	}

	return nil
}

package service

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	"github.com/ecoplaster/storefront/internal/backend"
	"github.com/ecoplaster/storefront/internal/cart"
	"github.com/ecoplaster/storefront/internal/config"
	appErrors "github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/gateway"
	"github.com/ecoplaster/storefront/internal/metrics"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/internal/session"
)

const VerificationFailedMessage = "Payment verification failed. Please contact support."

type ConfirmationService interface {
	Confirm(ctx context.Context, sessionID, intentID string, payment models.GatewayCallback) (*models.ConfirmationResult, error)
	ConfirmCashOnDelivery(ctx context.Context, sessionID, intentID string) (*models.ConfirmationResult, error)
}

type confirmationService struct {
	backend    backend.Backend
	bridge     *gateway.Bridge
	carts      *cart.Registry
	lastOrders session.LastOrderStore
	paths      config.Checkout
}

func NewConfirmationService(b backend.Backend, bridge *gateway.Bridge, carts *cart.Registry, lastOrders session.LastOrderStore, paths config.Checkout) ConfirmationService {
	return &confirmationService{
		backend:    b,
		bridge:     bridge,
		carts:      carts,
		lastOrders: lastOrders,
		paths:      paths,
	}
}

// Confirm verifies the gateway signature and creates the order in one call.
// It is never retried: a lost response after capture must go to support.
func (s *confirmationService) Confirm(ctx context.Context, sessionID, intentID string, payment models.GatewayCallback) (*models.ConfirmationResult, error) {
	logger := middleware.LoggerFromContext(ctx).With(
		slog.String("intentId", intentID),
		slog.String("razorpayOrderId", payment.RazorpayOrderID))

	result, err := s.backend.VerifyPaymentAndConfirm(ctx, &models.VerifyPaymentRequest{
		IntentID:          intentID,
		RazorpayOrderID:   payment.RazorpayOrderID,
		RazorpayPaymentID: payment.RazorpayPaymentID,
		RazorpaySignature: payment.RazorpaySignature,
	})
	if err != nil {
		metrics.RecordPaymentOutcome("verification_error")
		logger.Error("Payment verification request failed", slog.String("error", err.Error()))

		return nil, appErrors.VerificationFailedError(VerificationFailedMessage).WithError(err)
	}

	if !result.Success {
		metrics.RecordPaymentOutcome("verification_rejected")
		logger.Warn("Payment verification rejected", slog.String("status", result.Status))

		return nil, appErrors.VerificationFailedError(VerificationFailedMessage)
	}

	metrics.RecordPaymentOutcome("confirmed")
	logger.Info("Payment verified and order confirmed", slog.String("orderId", result.OrderID))

	return s.complete(ctx, sessionID, result.OrderID, result.Status), nil
}

func (s *confirmationService) ConfirmCashOnDelivery(ctx context.Context, sessionID, intentID string) (*models.ConfirmationResult, error) {
	logger := middleware.LoggerFromContext(ctx).With(slog.String("intentId", intentID))

	intent, err := s.bridge.LoadIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	if intent.PaymentMethod != models.PaymentMethodCashOnDelivery {
		return nil, appErrors.BadRequestError("This order was placed for online payment")
	}

	order, err := s.backend.ConfirmOrder(ctx, &models.ConfirmOrderRequest{
		PaymentIntentID: intentID,
		PaymentStatus:   models.PaymentStatusPending,
	})
	if err != nil {
		logger.Error("Cash on delivery confirmation failed", slog.String("error", err.Error()))
		return nil, backend.Translate(err)
	}

	metrics.RecordPaymentOutcome("cod_confirmed")
	logger.Info("Cash on delivery order confirmed", slog.String("orderId", order.ID))

	return s.complete(ctx, sessionID, order.ID, string(order.Status)), nil
}

// complete runs the success-only side effects. The order already exists, so
// local storage failures are logged rather than returned.
func (s *confirmationService) complete(ctx context.Context, sessionID, orderID, status string) *models.ConfirmationResult {
	logger := middleware.LoggerFromContext(ctx)

	if _, err := s.carts.Open(ctx, sessionID).ClearCart(ctx); err != nil {
		logger.Error("Failed to clear cart after confirmed order", slog.String("orderId", orderID), slog.String("error", err.Error()))
	}

	if err := s.lastOrders.Remember(ctx, sessionID, orderID); err != nil {
		logger.Error("Failed to remember last order", slog.String("orderId", orderID), slog.String("error", err.Error()))
	}

	return &models.ConfirmationResult{
		OrderID:     orderID,
		Status:      status,
		RedirectURL: s.paths.SuccessPath + "?orderId=" + url.QueryEscape(orderID),
	}
}

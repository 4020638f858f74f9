package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	"github.com/ecoplaster/storefront/internal/backend"
	"github.com/ecoplaster/storefront/internal/cart"
	"github.com/ecoplaster/storefront/internal/config"
	appErrors "github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/metrics"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/internal/pricing"
	"github.com/ecoplaster/storefront/internal/session"
	"golang.org/x/sync/singleflight"
)

const (
	EmptyCartMessage    = "Your cart is empty"
	SignInMessage       = "Please sign in to place your order. Your details have been saved."
	InvalidPromoMessage = "Invalid promo code"
)

type CheckoutService interface {
	ApplyPromotion(ctx context.Context, sessionID, code string) (*models.CartSnapshot, error)
	RemovePromotion(ctx context.Context, sessionID string) (*models.CartSnapshot, error)
	PlaceOrder(ctx context.Context, sessionID string, user *models.Claims, req *models.PlaceOrderRequest) (*models.PlaceOrderResponse, error)
	ResumeDraft(ctx context.Context, sessionID string) (*models.CheckoutDraft, error)
	State(sessionID string) models.CheckoutState
}

type checkoutService struct {
	backend   backend.Backend
	carts     *cart.Registry
	drafts    session.DraftStore
	validator *FormValidator
	paths     config.Checkout

	inflight singleflight.Group

	mu     sync.Mutex
	states map[string]models.CheckoutState
}

func NewCheckoutService(b backend.Backend, carts *cart.Registry, drafts session.DraftStore, paths config.Checkout) CheckoutService {
	s := &checkoutService{
		backend:   b,
		carts:     carts,
		drafts:    drafts,
		validator: NewFormValidator(),
		paths:     paths,
		states:    make(map[string]models.CheckoutState),
	}
	carts.OnEvict(func(sessionID string) { s.setState(sessionID, models.CheckoutStateIdle) })

	return s
}

func (s *checkoutService) ApplyPromotion(ctx context.Context, sessionID, code string) (*models.CartSnapshot, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, appErrors.ValidationError("Promo code is required")
	}

	v, err, _ := s.inflight.Do("promo:"+sessionID+":"+code, func() (any, error) {
		return s.applyPromotion(ctx, sessionID, code)
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.CartSnapshot), nil
}

func (s *checkoutService) applyPromotion(ctx context.Context, sessionID, code string) (*models.CartSnapshot, error) {
	logger := middleware.LoggerFromContext(ctx).With(slog.String("promoCode", code))

	promo, err := s.backend.ValidatePromotion(ctx, code)
	if err != nil {
		metrics.RecordPromotion("rejected")
		logger.Warn("Promotion validation failed", slog.String("error", err.Error()))

		if errors.Is(err, backend.ErrNotFound) {
			return nil, appErrors.RemoteRejectedError(InvalidPromoMessage).WithError(err)
		}

		return nil, backend.Translate(err)
	}

	store := s.carts.Open(ctx, sessionID)
	subtotal := pricing.Subtotal(store.Items())

	if !pricing.MeetsMinimum(subtotal, promo) {
		metrics.RecordPromotion("below_minimum")
		logger.Info("Promotion below minimum purchase",
			slog.String("subtotal", subtotal.StringFixed(2)),
			slog.String("minimumPurchase", promo.MinimumPurchase.StringFixed(2)))

		return nil, appErrors.ValidationError(
			fmt.Sprintf("Minimum purchase of ₹%s required for this promo code", promo.MinimumPurchase.StringFixed(2)))
	}

	snapshot, err := store.ApplyPromotion(ctx, *promo)
	if err != nil {
		return nil, storageFailure(ctx, "Failed to save promotion", err)
	}

	metrics.RecordPromotion("applied")
	logger.Info("Promotion applied", slog.String("discount", snapshot.Discount.StringFixed(2)))

	return snapshot, nil
}

func (s *checkoutService) RemovePromotion(ctx context.Context, sessionID string) (*models.CartSnapshot, error) {
	snapshot, err := s.carts.Open(ctx, sessionID).RemovePromotion(ctx)
	if err != nil {
		return nil, storageFailure(ctx, "Failed to remove promotion", err)
	}

	return snapshot, nil
}

// PlaceOrder turns the cart into a payment intent. Concurrent submissions for
// one session share a single attempt.
func (s *checkoutService) PlaceOrder(ctx context.Context, sessionID string, user *models.Claims, req *models.PlaceOrderRequest) (*models.PlaceOrderResponse, error) {
	v, err, shared := s.inflight.Do("order:"+sessionID, func() (any, error) {
		return s.placeOrder(ctx, sessionID, user, req)
	})
	if shared {
		middleware.LoggerFromContext(ctx).Info("Joined in-flight order placement")
	}

	if err != nil {
		return nil, err
	}

	return v.(*models.PlaceOrderResponse), nil
}

func (s *checkoutService) placeOrder(ctx context.Context, sessionID string, user *models.Claims, req *models.PlaceOrderRequest) (*models.PlaceOrderResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	s.setState(sessionID, models.CheckoutStateValidating)

	normalized := &models.PlaceOrderRequest{
		Shipping:      s.validator.Normalize(req.Shipping),
		PaymentMethod: req.PaymentMethod,
	}

	if err := s.validator.Check(normalized); err != nil {
		s.setState(sessionID, models.CheckoutStateIdle)
		metrics.RecordCheckout("invalid")
		logger.Warn("Checkout validation failed", slog.String("error", err.Error()))

		return nil, err
	}

	store := s.carts.Open(ctx, sessionID)
	items := store.Items()
	promo := store.Promotion()

	if len(items) == 0 {
		s.setState(sessionID, models.CheckoutStateIdle)
		metrics.RecordCheckout("invalid")

		return nil, appErrors.ValidationError(EmptyCartMessage).WithDetails([]string{EmptyCartMessage})
	}

	if user == nil {
		s.setState(sessionID, models.CheckoutStateIdle)
		metrics.RecordCheckout("auth_required")

		draft := &models.CheckoutDraft{
			Shipping:      normalized.Shipping,
			PaymentMethod: normalized.PaymentMethod,
		}
		if promo != nil {
			draft.PromoCode = promo.Code
		}

		if err := s.drafts.Save(ctx, sessionID, draft); err != nil {
			logger.Error("Failed to save checkout draft", slog.String("error", err.Error()))
		}

		return nil, appErrors.AuthRequiredError(SignInMessage)
	}

	s.setState(sessionID, models.CheckoutStateCreatingIntent)

	address := normalized.Shipping.Address()
	products := make([]models.IntentProduct, 0, len(items))
	for _, item := range items {
		products = append(products, models.IntentProduct{
			ProductID: item.ID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	ref, err := s.backend.CreatePaymentIntent(ctx, &models.CreatePaymentIntentRequest{
		UserID:          user.UserID,
		Products:        products,
		TotalAmount:     pricing.Total(pricing.Subtotal(items), promo),
		ShippingAddress: address,
		BillingAddress:  address,
		PaymentMethod:   normalized.PaymentMethod,
	})
	if err != nil {
		s.setState(sessionID, models.CheckoutStateIdle)
		metrics.RecordCheckout("failed")
		logger.Error("Failed to create payment intent", slog.String("error", err.Error()))

		return nil, backend.Translate(err)
	}

	s.setState(sessionID, models.CheckoutStateIntentCreated)
	metrics.RecordCheckout("intent_created")

	if err := s.drafts.Clear(ctx, sessionID); err != nil {
		logger.Warn("Failed to clear checkout draft", slog.String("error", err.Error()))
	}

	logger.Info("Payment intent created", slog.String("intentId", ref.ID), slog.String("userId", user.UserID))

	return &models.PlaceOrderResponse{
		IntentID:    ref.ID,
		Amount:      ref.Amount,
		RedirectURL: s.paths.PaymentPath + "?intentId=" + url.QueryEscape(ref.ID),
	}, nil
}

// ResumeDraft hands back the form saved before sign-in, once.
func (s *checkoutService) ResumeDraft(ctx context.Context, sessionID string) (*models.CheckoutDraft, error) {
	draft, err := s.drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, appErrors.StorageError("Failed to load saved checkout details").WithError(err)
	}

	if draft == nil {
		return nil, appErrors.NotFoundError("No saved checkout details")
	}

	if err := s.drafts.Clear(ctx, sessionID); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to clear checkout draft", slog.String("error", err.Error()))
	}

	return draft, nil
}

func (s *checkoutService) State(sessionID string) models.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.states[sessionID]; ok {
		return st
	}

	return models.CheckoutStateIdle
}

func (s *checkoutService) setState(sessionID string, st models.CheckoutState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st == models.CheckoutStateIdle {
		delete(s.states, sessionID)
		return
	}

	s.states[sessionID] = st
}

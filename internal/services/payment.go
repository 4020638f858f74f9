package service

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	"github.com/ecoplaster/storefront/internal/cart"
	appErrors "github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/gateway"
	"github.com/ecoplaster/storefront/internal/metrics"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/pkg/razorpay"
)

const (
	GatewayUnavailableMessage = "Payment gateway could not be loaded. Please contact support or choose Cash on Delivery."
	PaymentCancelledMessage   = "Payment was cancelled. You can try again."
	settleTimeout             = 30 * time.Second
)

type PaymentService interface {
	View(ctx context.Context, sessionID, intentID string) (*models.PaymentView, error)
	Begin(ctx context.Context, sessionID string, user *models.Claims, intentID string) (*models.CheckoutOptions, error)
	HandleEvent(ctx context.Context, sessionID, gatewayOrderID string, event models.PaymentEvent) (*models.PaymentStatusView, error)
	Retry(sessionID string) (*models.PaymentStatusView, error)
	Status(sessionID string) *models.PaymentStatusView
}

// ScriptLoaderFactory builds the per-session gateway script loader.
type ScriptLoaderFactory func() *razorpay.ScriptLoader

type PaymentOptions struct {
	AttemptTimeout time.Duration
	NewLoader      ScriptLoaderFactory
}

type paymentFlow struct {
	state          models.PaymentState
	message        string
	orderID        string
	redirectURL    string
	intentID       string
	gatewayOrderID string
	loader         *razorpay.ScriptLoader
	settled        chan struct{}
}

func (f *paymentFlow) view() *models.PaymentStatusView {
	return &models.PaymentStatusView{
		State:       f.state,
		Message:     f.message,
		OrderID:     f.orderID,
		RedirectURL: f.redirectURL,
	}
}

type paymentService struct {
	bridge       *gateway.Bridge
	confirmation ConfirmationService
	carts        *cart.Registry
	opts         PaymentOptions

	mu    sync.Mutex
	flows map[string]*paymentFlow
}

func NewPaymentService(bridge *gateway.Bridge, confirmation ConfirmationService, carts *cart.Registry, opts PaymentOptions) PaymentService {
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 30 * time.Minute
	}

	if opts.NewLoader == nil {
		opts.NewLoader = func() *razorpay.ScriptLoader {
			return razorpay.NewScriptLoader(http.DefaultClient, razorpay.CheckoutScriptURL)
		}
	}

	s := &paymentService{
		bridge:       bridge,
		confirmation: confirmation,
		carts:        carts,
		opts:         opts,
		flows:        make(map[string]*paymentFlow),
	}
	carts.OnEvict(s.forget)

	return s
}

// flow must be called with s.mu held.
func (s *paymentService) flow(sessionID string) *paymentFlow {
	f, ok := s.flows[sessionID]
	if !ok {
		f = &paymentFlow{state: models.PaymentStateIdle, loader: s.opts.NewLoader()}
		s.flows[sessionID] = f
	}

	return f
}

// flowFor returns the session's flow for intentID. An outcome recorded for an
// earlier intent does not carry over: a settled flow is rebound to the new one.
// Must be called with s.mu held.
func (s *paymentService) flowFor(sessionID, intentID string) *paymentFlow {
	f := s.flow(sessionID)

	if f.intentID != intentID && f.state != models.PaymentStateProcessing {
		f.state = models.PaymentStateIdle
		f.message = ""
		f.orderID = ""
		f.redirectURL = ""
		f.intentID = intentID
	}

	return f
}

func (s *paymentService) forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.flows[sessionID]; ok && f.state != models.PaymentStateProcessing {
		delete(s.flows, sessionID)
	}
}

// View builds the payment page. Loading the page starts the one-time script load.
func (s *paymentService) View(ctx context.Context, sessionID, intentID string) (*models.PaymentView, error) {
	logger := middleware.LoggerFromContext(ctx).With(slog.String("intentId", intentID))

	intent, err := s.bridge.LoadIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	loader := s.flowFor(sessionID, intent.ID).loader
	s.mu.Unlock()

	loadErr := loader.Load(ctx)

	preview := s.carts.Open(ctx, sessionID).Snapshot()
	mismatch := len(preview.Items) > 0 && !preview.Total.Equal(intent.TotalAmount)
	if mismatch {
		metrics.RecordTotalMismatch()
		logger.Warn("Payment total differs from cart preview",
			slog.String("serverTotal", intent.TotalAmount.StringFixed(2)),
			slog.String("previewTotal", preview.Total.StringFixed(2)))
	}

	s.mu.Lock()
	status := s.flowFor(sessionID, intent.ID).view()
	s.mu.Unlock()

	view := &models.PaymentView{
		Intent:        intent,
		PreviewTotal:  preview.Total,
		TotalMismatch: mismatch,
		Status:        status,
	}

	switch {
	case intent.Status == models.IntentStatusCompleted:
		view.Reason = "Payment already completed"
	case loadErr != nil:
		view.Reason = GatewayUnavailableMessage
		logger.Warn("Checkout script unavailable", slog.String("error", loadErr.Error()))
	case status.State == models.PaymentStateProcessing:
		view.Reason = "A payment is already in progress"
	case status.State == models.PaymentStateSuccess:
		view.Reason = "Payment already completed"
	case status.State == models.PaymentStateFailed:
		view.Reason = "Previous payment failed. Retry to pay again."
	default:
		view.PayEnabled = true
	}

	return view, nil
}

// Begin opens a hosted checkout attempt for the intent and moves the flow to processing.
func (s *paymentService) Begin(ctx context.Context, sessionID string, user *models.Claims, intentID string) (*models.CheckoutOptions, error) {
	logger := middleware.LoggerFromContext(ctx).With(slog.String("intentId", intentID))

	s.mu.Lock()
	f := s.flowFor(sessionID, intentID)
	switch f.state {
	case models.PaymentStateProcessing:
		s.mu.Unlock()
		return nil, appErrors.ConflictError("A payment is already in progress")
	case models.PaymentStateSuccess:
		s.mu.Unlock()
		return nil, appErrors.ConflictError("Payment already completed")
	case models.PaymentStateFailed:
		s.mu.Unlock()
		return nil, appErrors.ConflictError("Previous payment failed. Retry to pay again.")
	}
	f.state = models.PaymentStateProcessing
	f.message = ""
	f.orderID = ""
	f.redirectURL = ""
	loader := f.loader
	s.mu.Unlock()

	reset := func(message string) {
		s.mu.Lock()
		f.state = models.PaymentStateIdle
		f.message = message
		s.mu.Unlock()
	}

	intent, err := s.bridge.LoadIntent(ctx, intentID)
	if err != nil {
		reset("")
		return nil, err
	}

	if intent.Status == models.IntentStatusCompleted {
		reset("")
		return nil, appErrors.ConflictError("Payment already completed")
	}

	if err := loader.Load(ctx); err != nil {
		reset(GatewayUnavailableMessage)
		logger.Warn("Checkout script unavailable", slog.String("error", err.Error()))

		return nil, appErrors.GatewayUnavailableError(GatewayUnavailableMessage).WithError(err)
	}

	sess, err := s.bridge.Open(ctx, intent, user)
	if err != nil {
		reset("")
		logger.Error("Failed to open payment attempt", slog.String("error", err.Error()))

		return nil, err
	}

	settled := make(chan struct{})

	s.mu.Lock()
	f.intentID = intent.ID
	f.gatewayOrderID = sess.Options.OrderID
	f.settled = settled
	s.mu.Unlock()

	logger.Info("Payment attempt opened", slog.String("razorpayOrderId", sess.Options.OrderID))

	go s.settle(context.WithoutCancel(ctx), f, sess.Attempt, intent.ID, sessionID, settled)

	return &sess.Options, nil
}

// settle waits for the attempt's single outcome and applies it to the flow.
func (s *paymentService) settle(ctx context.Context, f *paymentFlow, attempt *razorpay.Attempt, intentID, sessionID string, settled chan struct{}) {
	defer close(settled)

	logger := middleware.LoggerFromContext(ctx).With(
		slog.String("razorpayOrderId", attempt.OrderID),
		slog.String("intentId", intentID))

	waitCtx, cancel := context.WithTimeout(ctx, s.opts.AttemptTimeout)
	result, err := attempt.Wait(waitCtx)
	cancel()

	if err != nil {
		if s.bridge.Abandon(attempt.OrderID) {
			logger.Info("Payment attempt abandoned", slog.Duration("after", s.opts.AttemptTimeout))
		}
		// Either the abandon or a late callback has buffered the result.
		result, _ = attempt.Wait(ctx)
	}

	ctx, cancel = context.WithTimeout(ctx, settleTimeout)
	defer cancel()

	var (
		state   models.PaymentState
		message string
		orderID string
		target  string
	)

	switch result.Outcome {
	case razorpay.OutcomeSuccess:
		confirmed, err := s.confirmation.Confirm(ctx, sessionID, intentID, models.GatewayCallback{
			RazorpayOrderID:   result.Payment.OrderID,
			RazorpayPaymentID: result.Payment.PaymentID,
			RazorpaySignature: result.Payment.Signature,
		})
		if err != nil {
			state, message = models.PaymentStateFailed, VerificationFailedMessage
		} else {
			state, orderID, target = models.PaymentStateSuccess, confirmed.OrderID, confirmed.RedirectURL
		}
	case razorpay.OutcomeFailure:
		metrics.RecordPaymentOutcome("failed")
		if err := s.bridge.ReportFailure(ctx, attempt.OrderID, result.Failure); err != nil {
			logger.Warn("Payment failure not recorded by the API", slog.String("error", err.Error()))
		}
		state, message = models.PaymentStateFailed, result.Failure.Description
		logger.Warn("Payment failed at gateway",
			slog.String("code", result.Failure.Code),
			slog.String("description", result.Failure.Description))
	default:
		metrics.RecordPaymentOutcome("cancelled")
		state, message = models.PaymentStateIdle, PaymentCancelledMessage
	}

	s.mu.Lock()
	f.state = state
	f.message = message
	f.orderID = orderID
	f.redirectURL = target
	f.gatewayOrderID = ""
	s.mu.Unlock()

	logger.Info("Payment attempt settled", slog.String("state", state.String()))
}

// HandleEvent forwards a browser callback and returns once the flow has settled.
func (s *paymentService) HandleEvent(ctx context.Context, sessionID, gatewayOrderID string, event models.PaymentEvent) (*models.PaymentStatusView, error) {
	s.mu.Lock()
	f, ok := s.flows[sessionID]
	if !ok || f.state != models.PaymentStateProcessing || f.gatewayOrderID != gatewayOrderID {
		s.mu.Unlock()
		return nil, appErrors.ConflictError("No payment attempt is in progress for this order")
	}
	settled := f.settled
	s.mu.Unlock()

	if err := s.bridge.Deliver(gatewayOrderID, event); err != nil {
		return nil, err
	}

	select {
	case <-settled:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return s.Status(sessionID), nil
}

// Retry is the only way out of failed.
func (s *paymentService) Retry(sessionID string) (*models.PaymentStatusView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.flow(sessionID)

	switch f.state {
	case models.PaymentStateFailed:
		f.state = models.PaymentStateIdle
		f.message = ""
	case models.PaymentStateIdle:
	default:
		return nil, appErrors.ConflictError("Payment cannot be retried from state " + f.state.String())
	}

	return f.view(), nil
}

func (s *paymentService) Status(sessionID string) *models.PaymentStatusView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.flows[sessionID]; ok {
		return f.view()
	}

	return &models.PaymentStatusView{State: models.PaymentStateIdle}
}

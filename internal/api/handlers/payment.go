package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	"github.com/ecoplaster/storefront/internal/models"
	service "github.com/ecoplaster/storefront/internal/services"
	"github.com/ecoplaster/storefront/internal/utils"
	"github.com/ecoplaster/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type PaymentHandler struct {
	paymentService      service.PaymentService
	confirmationService service.ConfirmationService
	validator           *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService, confirmationService service.ConfirmationService) *PaymentHandler {
	return &PaymentHandler{
		paymentService:      paymentService,
		confirmationService: confirmationService,
		validator:           validator.New(),
	}
}

// GetPaymentPage godoc
//	@Summary		Load the payment page
//	@Description	Fetches the payment intent and reports whether Pay Now can be used.
//	@Tags			Payments
//	@Produce		json
//	@Param			id	path		string					true	"Payment intent ID"
//	@Success		200	{object}	models.PaymentView		"Payment page state"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Payment session not found"
//	@Failure		410	{object}	response.ErrorResponse	"Payment intent expired, redirect to checkout"
//	@Security		BearerAuth
//	@Router			/payments/intents/{id} [get]
func (h *PaymentHandler) GetPaymentPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		view, err := h.paymentService.View(r.Context(), sid, r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// BeginPayment godoc
//	@Summary		Start a payment attempt
//	@Description	Creates a fresh gateway order and returns the options for the hosted checkout.
//	@Tags			Payments
//	@Produce		json
//	@Param			id	path		string					true	"Payment intent ID"
//	@Success		201	{object}	models.CheckoutOptions	"Hosted checkout options"
//	@Failure		409	{object}	response.ErrorResponse	"A payment is already in progress"
//	@Failure		410	{object}	response.ErrorResponse	"Payment intent expired"
//	@Failure		503	{object}	response.ErrorResponse	"Gateway script unavailable"
//	@Security		BearerAuth
//	@Router			/payments/intents/{id}/attempts [post]
func (h *PaymentHandler) BeginPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		claims, ok := requireUser(w, r)
		if !ok {
			return
		}

		opts, err := h.paymentService.Begin(r.Context(), sid, claims, r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Payment attempt started", slog.String("razorpayOrderId", opts.OrderID))
		response.Success(w, http.StatusCreated, opts)
	}
}

// HandlePaymentEvent godoc
//	@Summary		Report a hosted checkout callback
//	@Description	Forwards the success, failure or dismiss callback and returns the settled payment state.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			orderId	path		string						true	"Gateway order ID"
//	@Param			event	body		models.PaymentEvent			true	"Callback payload"
//	@Success		200		{object}	models.PaymentStatusView	"Payment state after the callback"
//	@Failure		409		{object}	response.ErrorResponse		"No attempt in progress for this order"
//	@Security		BearerAuth
//	@Router			/payments/attempts/{orderId}/events [post]
func (h *PaymentHandler) HandlePaymentEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		var event models.PaymentEvent
		if !utils.ParseAndValidate(r, w, &event, h.validator) {
			logger.Warn("Invalid payment event")
			return
		}

		ctx, cancel := utils.WithSettleTimeout(r.Context())
		defer cancel()

		status, err := h.paymentService.HandleEvent(ctx, sid, r.PathValue("orderId"), event)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Payment event handled",
			slog.String("event", string(event.Type)),
			slog.String("state", status.State.String()))
		response.Success(w, http.StatusOK, status)
	}
}

func (h *PaymentHandler) ConfirmCashOnDelivery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		if _, ok := requireUser(w, r); !ok {
			return
		}

		result, err := h.confirmationService.ConfirmCashOnDelivery(r.Context(), sid, r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, result)
	}
}

func (h *PaymentHandler) Retry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		status, err := h.paymentService.Retry(sid)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, status)
	}
}

func (h *PaymentHandler) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, h.paymentService.Status(sid))
	}
}

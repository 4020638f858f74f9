package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	"github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/models"
	service "github.com/ecoplaster/storefront/internal/services"
	"github.com/ecoplaster/storefront/internal/utils"
	"github.com/ecoplaster/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// ApplyPromotion godoc
//	@Summary		Apply a promo code
//	@Description	Validates the code with the storefront API and stores it when the cart meets its minimum purchase.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			promotion	body		models.ApplyPromotionRequest	true	"Promo code"
//	@Success		200			{object}	models.CartSnapshot				"Cart with discount"
//	@Failure		400			{object}	response.ErrorResponse			"Below minimum purchase"
//	@Failure		422			{object}	response.ErrorResponse			"Invalid promo code"
//	@Failure		502			{object}	response.ErrorResponse			"Network error"
//	@Router			/checkout/promotions [post]
func (h *CheckoutHandler) ApplyPromotion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.ApplyPromotionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.checkoutService.ApplyPromotion(r.Context(), sid, req.Code)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CheckoutHandler) RemovePromotion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		cart, err := h.checkoutService.RemovePromotion(r.Context(), sid)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// PlaceOrder godoc
//	@Summary		Place an order
//	@Description	Validates the shipping form and creates a payment intent. Anonymous shoppers get their form saved and a sign-in prompt.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.PlaceOrderRequest	true	"Shipping details and payment method"
//	@Success		201		{object}	models.PlaceOrderResponse	"Payment intent created"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or empty cart"
//	@Failure		401		{object}	response.ErrorResponse		"Sign-in required, draft saved"
//	@Failure		422		{object}	response.ErrorResponse		"Rejected by the storefront API"
//	@Failure		502		{object}	response.ErrorResponse		"Network error"
//	@Router			/checkout/orders [post]
func (h *CheckoutHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		// Field checks happen in the service so the shopper gets one message per field.
		var req models.PlaceOrderRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		user, _ := middleware.UserFromContext(r.Context())

		resp, err := h.checkoutService.PlaceOrder(r.Context(), sid, user, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Order placed", slog.String("intentId", resp.IntentID))
		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *CheckoutHandler) ResumeDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		if _, ok := requireUser(w, r); !ok {
			return
		}

		draft, err := h.checkoutService.ResumeDraft(r.Context(), sid)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, draft)
	}
}

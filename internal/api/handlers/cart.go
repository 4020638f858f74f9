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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// GetCart godoc
//	@Summary		Get the session's cart
//	@Description	Returns the cart snapshot with count, subtotal, discount and total.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartSnapshot		"Current cart"
//	@Failure		400	{object}	response.ErrorResponse	"Missing session"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, h.cartService.GetCart(r.Context(), sid))
	}
}

// AddItem godoc
//	@Summary		Add an item to the cart
//	@Description	Increments the line when the product is already in the cart. Opens the cart unless revealUI is false.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Item to add"
//	@Success		200		{object}	models.CartSnapshot		"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		500		{object}	response.ErrorResponse	"Cart could not be saved"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), sid, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.Item.ID), slog.Int("cartCount", cart.CartCount))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), sid, r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateShipping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.ShippingDraft
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateShipping(r.Context(), sid, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	service "github.com/ecoplaster/storefront/internal/services"
	"github.com/ecoplaster/storefront/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Description	Retrieves an order from the storefront API. Requires authentication.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID"
//	@Success		200	{object}	models.Order			"Order"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireUser(w, r)
		if !ok {
			return
		}
		logger = logger.With(slog.String("userId", claims.UserID))

		order, err := h.orderService.GetOrder(r.Context(), r.PathValue("id"))
		if err != nil {
			logger.Warn("Failed to get order", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// LastOrder returns the order this session confirmed most recently.
func (h *OrderHandler) LastOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		if _, ok := requireUser(w, r); !ok {
			return
		}

		order, err := h.orderService.LastOrder(r.Context(), sid)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

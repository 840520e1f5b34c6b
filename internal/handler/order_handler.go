package handler

import (
	"net/http"

	"storefront/api"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	orders, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/:id. Only the order's owner may fetch it.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Create handles POST /api/orders: checkout from the caller's cart.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req api.CreateOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

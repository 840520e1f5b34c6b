package handler

import (
	"net/http"

	"storefront/api"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// List handles GET /api/cart.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req api.AddCartItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	item, err := h.service.Add(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/cart/:id.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req api.UpdateCartItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/cart/:id.
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

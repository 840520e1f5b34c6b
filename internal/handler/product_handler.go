package handler

import (
	"net/http"

	"storefront/api"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalogue HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products with optional category, brand and search
// query parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := api.ProductFilter{
		Category: query.Get("category"),
		Brand:    query.Get("brand"),
		Search:   query.Get("search"),
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

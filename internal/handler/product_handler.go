package handler

import (
	"encoding/json"
	"net/http"

	"catalog/internal/model"
	"catalog/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
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

// List handles GET /products with an optional ?category= filter.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	products, err := h.service.List(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewProductResponses(products))
}

// Create handles POST /products.
//
// Malformed bodies and validation failures are answered with 500, the same
// status as database faults, so every failure has one shape.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	id, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreateProductResponse{ID: id})
}

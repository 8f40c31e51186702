package handlers

import (
	"net/http"
	"strconv"

	"marketplace/internal/apperr"
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type ProductHandler struct {
	productService *services.ProductService
	logger         zerolog.Logger
}

func NewProductHandler(productService *services.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.GetVendorID(r)
	if !ok {
		respondError(w, h.logger, apperr.Unauthenticated("Not authorized"))
		return
	}

	var req models.CreateProductRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	product, err := h.productService.Create(r.Context(), vendorID, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.GetVendorID(r)
	if !ok {
		respondError(w, h.logger, apperr.Unauthenticated("Not authorized"))
		return
	}

	// Unparseable values stay zero and clamp to defaults downstream.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.productService.List(r.Context(), vendorID, page, limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.GetVendorID(r)
	if !ok {
		respondError(w, h.logger, apperr.Unauthenticated("Not authorized"))
		return
	}

	productID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, apperr.NotFound("Product not found"))
		return
	}

	var patch models.UpdateProductRequest
	if err := decodeBody(r, &patch); err != nil {
		respondError(w, h.logger, err)
		return
	}

	product, err := h.productService.Update(r.Context(), vendorID, productID, &patch)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.GetVendorID(r)
	if !ok {
		respondError(w, h.logger, apperr.Unauthenticated("Not authorized"))
		return
	}

	productID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, apperr.NotFound("Product not found"))
		return
	}

	if err := h.productService.Delete(r.Context(), vendorID, productID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Product deleted successfully"})
}

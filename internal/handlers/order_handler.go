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

type OrderHandler struct {
	orderService *services.OrderService
	logger       zerolog.Logger
}

func NewOrderHandler(orderService *services.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.GetVendorID(r)
	if !ok {
		respondError(w, h.logger, apperr.Unauthenticated("Not authorized"))
		return
	}

	orders, err := h.orderService.List(r.Context(), vendorID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Ship(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.GetVendorID(r)
	if !ok {
		respondError(w, h.logger, apperr.Unauthenticated("Not authorized"))
		return
	}

	// A malformed id is indistinguishable from an order the caller
	// does not own.
	orderID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, apperr.Forbidden("Unauthorized"))
		return
	}

	order, err := h.orderService.Ship(r.Context(), vendorID, orderID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ShipOrderResponse{
		Message: "Order marked as shipped",
		Order:   order,
	})
}

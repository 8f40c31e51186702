package handlers

import (
	"net/http"

	"marketplace/internal/models"
	"marketplace/internal/services"

	"github.com/rs/zerolog"
)

type VendorHandler struct {
	vendorService *services.VendorService
	authService   *services.AuthService
	logger        zerolog.Logger
}

func NewVendorHandler(vendorService *services.VendorService, authService *services.AuthService, logger zerolog.Logger) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
		authService:   authService,
		logger:        logger,
	}
}

func (h *VendorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	vendor, err := h.vendorService.Register(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	token, err := h.authService.IssueToken(vendor.ID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, models.AuthResponse{
		ID:    vendor.ID,
		Name:  vendor.Name,
		Token: token,
	})
}

func (h *VendorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	vendor, err := h.vendorService.Login(r.Context(), &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	// Earlier tokens stay valid until their own expiry; issuing a
	// fresh one revokes nothing.
	token, err := h.authService.IssueToken(vendor.ID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, models.AuthResponse{
		ID:    vendor.ID,
		Name:  vendor.Name,
		Token: token,
	})
}

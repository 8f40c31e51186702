package services

import (
	"context"
	"errors"

	"marketplace/internal/apperr"
	"marketplace/internal/models"
	"marketplace/internal/store"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type VendorService struct {
	vendors store.VendorStore
	logger  zerolog.Logger
}

func NewVendorService(vendors store.VendorStore, logger zerolog.Logger) *VendorService {
	return &VendorService{
		vendors: vendors,
		logger:  logger,
	}
}

func (s *VendorService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Vendor, error) {
	var fields []apperr.FieldError
	if req.Name == "" {
		fields = append(fields, apperr.Field("name", "Name is required"))
	}
	if req.Email == "" {
		fields = append(fields, apperr.Field("email", "Email is required"))
	}
	if req.Password == "" {
		fields = append(fields, apperr.Field("password", "Password is required"))
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}

	exists, err := s.vendors.EmailExists(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error checking existing vendor")
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, apperr.Conflict("Vendor already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, apperr.Internal(err)
	}

	vendor, err := s.vendors.Create(ctx, req.Name, req.Email, string(hashedPassword))
	if err != nil {
		// The pre-check races with concurrent registrations; the unique
		// index has the final say.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("Vendor already exists")
		}
		s.logger.Error().Err(err).Msg("Error creating vendor")
		return nil, apperr.Internal(err)
	}

	s.logger.Info().Int("vendor_id", vendor.ID).Str("email", vendor.Email).Msg("Vendor registered")
	return vendor, nil
}

// Login deliberately reports the same error for an unknown email and
// a wrong password.
func (s *VendorService) Login(ctx context.Context, req *models.LoginRequest) (*models.Vendor, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.Unauthenticated("Invalid credentials")
	}

	vendor, err := s.vendors.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthenticated("Invalid credentials")
		}
		s.logger.Error().Err(err).Msg("Error querying vendor")
		return nil, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Failed login attempt")
		return nil, apperr.Unauthenticated("Invalid credentials")
	}

	s.logger.Info().Int("vendor_id", vendor.ID).Msg("Vendor logged in")
	return vendor, nil
}

func (s *VendorService) GetByID(ctx context.Context, id int) (*models.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Vendor not found")
		}
		s.logger.Error().Err(err).Int("vendor_id", id).Msg("Error fetching vendor")
		return nil, apperr.Internal(err)
	}
	return vendor, nil
}

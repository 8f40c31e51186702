package services

import (
	"time"

	"marketplace/internal/apperr"
	"marketplace/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const tokenValidity = 24 * time.Hour

// AuthService issues and verifies session tokens. Signing is
// stateless; nothing is persisted per token and there is no
// revocation list.
type AuthService struct {
	secretKey []byte
	logger    zerolog.Logger
}

type Claims struct {
	VendorID int `json:"vendor_id"`
	jwt.RegisteredClaims
}

func NewAuthService(cfg config.Config, logger zerolog.Logger) *AuthService {
	return &AuthService{
		secretKey: []byte(cfg.JWTSecret),
		logger:    logger,
	}
}

func (s *AuthService) IssueToken(vendorID int) (string, error) {
	now := time.Now()
	claims := &Claims{
		VendorID: vendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenValidity)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error signing token")
		return "", apperr.Internal(err)
	}

	return tokenString, nil
}

// VerifyToken collapses every failure mode into one error so callers
// cannot distinguish malformed, forged, and expired tokens. The
// distinction is still logged for operators.
func (s *AuthService) VerifyToken(tokenString string) (int, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secretKey, nil
	})

	if err != nil || !token.Valid {
		s.logger.Warn().Err(err).Msg("Token verification failed")
		return 0, apperr.Unauthenticated("Not authorized")
	}

	return claims.VendorID, nil
}

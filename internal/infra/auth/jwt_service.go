// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lnlfit/config"
	"lnlfit/internal/domain/service"
)

// defaultAccessTTL bounds admin sessions when no TTL is configured.
const defaultAccessTTL = 8 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    string        // Secret key for signing admin session tokens.
	accessTTL time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Admin == "" {
		return nil, errors.New("admin jwt secret must be provided")
	}

	ttl := defaultAccessTTL
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret:    cfg.SecretKey.Admin,
		accessTTL: ttl,
	}, nil
}

// GenerateToken creates a signed session token for an admin account.
func (s *jwtService) GenerateToken(adminID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   adminID,                            // Subject (who the token is for)
		"email": email,                              // Login identity
		"role":  role,                               // Stateless authorization
		"iat":   time.Now().Unix(),                  // Issued At
		"exp":   time.Now().Add(s.accessTTL).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the validity of a token string against the admin secret.
func (s *jwtService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
}

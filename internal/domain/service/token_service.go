package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenService defines the interface for issuing and validating admin session tokens.
type TokenService interface {
	// GenerateToken creates a signed access token for an admin account.
	GenerateToken(adminID, email, role string) (string, error)

	// ValidateToken checks a token string and returns the parsed token.
	ValidateToken(tokenString string) (*jwt.Token, error)
}

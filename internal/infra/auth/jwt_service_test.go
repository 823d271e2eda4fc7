package auth

import (
	"testing"
	"time"

	"lnlfit/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Admin = secret
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: time.Hour}

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig("test_admin_secret_key_very_long_for_testing"))
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	token, err := jwtService.GenerateToken("admin-1", "ops@lnlfit.com", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin-1", claims["sub"])
	assert.Equal(t, "ops@lnlfit.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig("test_admin_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	parsed, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, parsed)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	issuer, err := NewJWTService(testConfig("secret-a-secret-a-secret-a-secret"))
	require.NoError(t, err)
	verifier, err := NewJWTService(testConfig("secret-b-secret-b-secret-b-secret"))
	require.NoError(t, err)

	token, err := issuer.GenerateToken("admin-1", "ops@lnlfit.com", "admin")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(testConfig(""))
	assert.Error(t, err)
}

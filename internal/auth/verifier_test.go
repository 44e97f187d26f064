package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "buyer@example.com",
		"sub":   "user-1",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	identity, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", identity.Email)
	assert.Equal(t, "user-1", identity.Subject)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	token := signToken(t, "other-secret", jwt.MapClaims{
		"email": "buyer@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "buyer@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyRejectsMissingEmail(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	_, err := v.Verify(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

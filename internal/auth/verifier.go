package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified caller: the claims the rest of the service is
// allowed to trust.
type Identity struct {
	Email   string
	Subject string
}

var ErrUnauthorized = errors.New("missing or invalid credentials")

// Verifier validates a bearer credential against the identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// JWTVerifier checks HS256-signed tokens issued by the identity provider
// sharing our secret. It only consumes the email and sub claims.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}
	if claims.Email == "" {
		return nil, ErrUnauthorized
	}
	return &Identity{Email: claims.Email, Subject: claims.Subject}, nil
}

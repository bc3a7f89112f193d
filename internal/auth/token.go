package auth

import (
	"errors"
	"fmt"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenVerifier validates bearer tokens against a single symmetric secret.
// The secret is injected at construction; verification never reads ambient
// state and performs no I/O.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier builds a verifier. An empty secret is allowed here so the
// process can start, but every Verify call will then fail closed with
// ErrSecretNotConfigured.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Claims describes the JWT payload. The subject, expiry and issued-at claims
// come from RegisteredClaims; role and email are optional extensions.
type Claims struct {
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verify checks signature, expiry and required claims, in that order, and
// returns the typed claims on success. Failures are reported through the
// package sentinel errors; the low-level jwt error stays wrapped.
func (tv *TokenVerifier) Verify(tokenStr string) (*Claims, error) {
	if len(tv.secret) == 0 {
		return nil, ErrSecretNotConfigured
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return tv.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

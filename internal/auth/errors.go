package auth

import "errors"

// Sentinel errors returned by TokenVerifier. The HTTP layer maps these to
// caller-visible outcomes; the underlying crypto error is never exposed.
var (
	// ErrSecretNotConfigured means the signing secret is absent. This is an
	// operator fault, not a caller fault, and maps to an internal error.
	ErrSecretNotConfigured = errors.New("auth: signing secret not configured")

	// ErrInvalidToken covers bad signatures, tampered payloads, unexpected
	// signing methods and structurally broken tokens.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrExpiredToken is kept distinct from ErrInvalidToken: the caller can
	// recover by obtaining a fresh token.
	ErrExpiredToken = errors.New("auth: token expired")

	// ErrMissingSubject means the token verified but carries no sub claim.
	ErrMissingSubject = errors.New("auth: missing required claims")
)

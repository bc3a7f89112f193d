package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/insurance-product-service/pkg/util"
)

const bearerScheme = "Bearer"

// AuthMiddleware validates bearer tokens and attaches the caller Identity.
type AuthMiddleware struct {
	verifier *TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(verifier *TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// Handle enforces authentication for protected routes. Checks run in a fixed
// order and fail fast: header presence, scheme shape, then token
// verification. No handler runs unless every check passes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("no token provided")
	}

	// Exactly two whitespace-separated fields, scheme match is case-sensitive.
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || parts[0] != bearerScheme {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.verifier.Verify(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, ErrSecretNotConfigured):
			// Operator fault: log the actionable detail, keep the caller
			// message generic.
			m.logger.Error("JWT_SECRET is not configured", zap.Error(err))
			return apperrors.NewInternalError(nil)
		case errors.Is(err, ErrExpiredToken):
			return apperrors.NewUnauthorized("token expired")
		case errors.Is(err, ErrMissingSubject):
			return apperrors.NewUnauthorized("missing required claims")
		default:
			return apperrors.NewUnauthorized("invalid token")
		}
	}

	storeIdentity(c, &Identity{
		Subject: claims.Subject,
		Role:    claims.Role,
		Email:   claims.Email,
	})
	return c.Next()
}

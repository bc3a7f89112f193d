package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/insurance-product-service/pkg/util"
)

// RequireAdmin gates privileged routes behind the configured admin role.
// It assumes AuthMiddleware already ran; a missing Identity is rejected
// rather than treated as a server error.
func RequireAdmin(adminRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("no token provided")
		}
		if !identity.HasRole(adminRole) {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}

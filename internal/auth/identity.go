package auth

import "github.com/gofiber/fiber/v2"

const identityKey = "auth_identity"

// Identity is the request-scoped, verified representation of the caller.
// It is built once from token claims and never persisted or mutated.
// Empty Role/Email mean the claim was not asserted.
type Identity struct {
	Subject string
	Role    string
	Email   string
}

// HasRole reports whether the caller asserted exactly the given role.
// Comparison is case-sensitive; an absent role never matches.
func (i *Identity) HasRole(role string) bool {
	return i != nil && i.Role != "" && i.Role == role
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}

func storeIdentity(c *fiber.Ctx, identity *Identity) {
	c.Locals(identityKey, identity)
}

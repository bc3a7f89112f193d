package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/insurance-product-service/pkg/util"
)

func newGateApp(identity *Identity, invoked *bool) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "message": de.Message}})
		},
	})

	seed := func(c *fiber.Ctx) error {
		if identity != nil {
			storeIdentity(c, identity)
		}
		return c.Next()
	}
	app.Post("/privileged", seed, RequireAdmin("admin"), func(c *fiber.Ctx) error {
		*invoked = true
		return c.SendStatus(http.StatusCreated)
	})
	return app
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name        string
		identity    *Identity
		wantStatus  int
		wantInvoked bool
	}{
		{"admin role permitted", &Identity{Subject: "123", Role: "admin"}, http.StatusCreated, true},
		{"non-admin role forbidden", &Identity{Subject: "456", Role: "user"}, http.StatusForbidden, false},
		{"case mismatch forbidden", &Identity{Subject: "456", Role: "Admin"}, http.StatusForbidden, false},
		{"absent role forbidden", &Identity{Subject: "789"}, http.StatusForbidden, false},
		{"no identity unauthorized", nil, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoked := false
			app := newGateApp(tt.identity, &invoked)

			resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/privileged", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantInvoked, invoked)
		})
	}
}

func TestIdentityHasRole(t *testing.T) {
	assert.True(t, (&Identity{Role: "admin"}).HasRole("admin"))
	assert.False(t, (&Identity{Role: "Admin"}).HasRole("admin"))
	assert.False(t, (&Identity{}).HasRole("admin"))
	assert.False(t, (&Identity{Role: "admin"}).HasRole(""))

	var missing *Identity
	assert.False(t, missing.HasRole("admin"))
}

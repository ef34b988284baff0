package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"usercenter/internal/models"
	"usercenter/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newApp(permission string) *fiber.App {
	app := fiber.New()
	auth := NewAuthMiddleware(secret)
	app.Get("/protected", auth.Handler, HasPermission(permission), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	return app
}

func token(t *testing.T, role string, permissions []string) string {
	t.Helper()
	tok, err := utils.GenerateToken(&models.UserClaims{UserID: 3, Role: role, Permissions: permissions}, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: fiber.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: fiber.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", wantStatus: fiber.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token(t, "user", models.GetDefaultPermissions("user")), wantStatus: fiber.StatusOK},
		{name: "missing permission", header: "Bearer " + token(t, "user", nil), wantStatus: fiber.StatusForbidden},
		{name: "admin bypasses permissions", header: "Bearer " + token(t, "admin", nil), wantStatus: fiber.StatusOK},
	}

	app := newApp(models.PermissionWalletWrite)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

// Package middleware provides HTTP middleware components for the application.
// It includes authentication and authorization middleware that can be used
// with the fiber web framework.
package middleware

import (
	"log"
	"strings"

	"usercenter/internal/models"
	"usercenter/internal/utils"
	"usercenter/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the user claims to the request context.
type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{
		secret: secret,
	}
}

// Handler validates the bearer token and stores its claims under the
// "claims" and "userID" locals.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := utils.ParseToken(tokenString, m.secret)
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return response.Unauthorized(c, "invalid token")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// If user is admin, allow all permissions
		if claims.Role == "admin" || claims.HasPermission(permission) {
			return c.Next()
		}

		log.Printf("Access denied: user %d lacks %s", claims.UserID, permission)
		return response.Forbidden(c, "Insufficient permissions")
	}
}

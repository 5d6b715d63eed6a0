package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	// EmailLocalKey and RoleLocalKey hold the authenticated identity in Fiber's
	// context locals. Credentials stay request-scoped, never global.
	EmailLocalKey = "email"
	RoleLocalKey  = "role"
)

var errInvalidToken = errors.New("invalid token")

// Auth validates the bearer credential and enforces the institution domain.
// The credential format is "<email>|<role>", a placeholder for the identity
// provider the deployment fronts; real token introspection plugs in here
// without changing downstream handlers.
func Auth(allowedDomain string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		email, role, err := parseToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		if !strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(allowedDomain)) {
			return fiber.NewError(fiber.StatusForbidden, "email domain not allowed")
		}

		c.Locals(EmailLocalKey, email)
		c.Locals(RoleLocalKey, strings.ToLower(role))
		return c.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after Auth.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(RoleLocalKey).(string)
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "forbidden")
		}
		return c.Next()
	}
}

// parseToken splits the "email|role" credential.
func parseToken(token string) (string, string, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 2 {
		return "", "", errInvalidToken
	}
	email := strings.TrimSpace(parts[0])
	role := strings.TrimSpace(parts[1])
	if email == "" || role == "" {
		return "", "", errInvalidToken
	}
	return email, role, nil
}

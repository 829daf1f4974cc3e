package middleware

import (
	"strings"

	"bakery-backoffice/internal/model"

	"github.com/gofiber/fiber/v2"
)

const userKey = "user"

// Authenticator resolves a token key to its user.
type Authenticator interface {
	Authenticate(key string) (*model.User, error)
}

// tokenFromHeader extracts the key from "Token <key>" or "Bearer <key>".
// ok is false when no Authorization header was sent.
func tokenFromHeader(c *fiber.Ctx) (key string, ok bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", true
	}
	switch strings.ToLower(parts[0]) {
	case "token", "bearer":
		return parts[1], true
	}
	return "", true
}

// Authenticate identifies the caller when an Authorization header is present.
// Requests without one pass through anonymously; a bad token is rejected.
func Authenticate(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, ok := tokenFromHeader(c)
		if !ok {
			return c.Next()
		}
		if key == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Token <key>"})
		}
		user, err := auth.Authenticate(key)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid token."})
		}
		c.Locals(userKey, user)
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests. It authenticates the caller itself
// when Authenticate has not run earlier in the chain.
func RequireAuth(auth Authenticator) fiber.Handler {
	authenticate := Authenticate(auth)
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) != nil {
			return c.Next()
		}
		if _, ok := tokenFromHeader(c); !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Authentication credentials were not provided."})
		}
		return authenticate(c)
	}
}

// RequireRole checks that the authenticated user's profile holds one of roles.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(401).JSON(fiber.Map{"error": "Authentication credentials were not provided."})
		}
		if !user.HasRole(roles...) {
			return c.Status(403).JSON(fiber.Map{"error": "You do not have permission to perform this action."})
		}
		return c.Next()
	}
}

// CurrentUser returns the user set by Authenticate, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(userKey).(*model.User)
	return user
}

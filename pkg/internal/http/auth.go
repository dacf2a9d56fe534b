package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pressroomhq/pressroom/pkg/internal/security"
	"github.com/pressroomhq/pressroom/pkg/internal/services"
)

// authMiddleware resolves a bearer token into the caller's account and parks
// it in locals. Missing or invalid credentials are not an error at this
// layer; operations that require an identity reject anonymous callers
// themselves.
func authMiddleware(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(fiber.HeaderAuthorization)
		if after, ok := strings.CutPrefix(token, "Bearer "); ok {
			token = after
		} else {
			token = ""
		}
		if len(token) == 0 {
			return c.Next()
		}

		claims, err := security.ParseToken(token)
		if err != nil {
			return c.Next()
		}

		user, err := users.Get(claims.UserID)
		if err != nil {
			return c.Next()
		}

		c.Locals("user", &user)
		return c.Next()
	}
}

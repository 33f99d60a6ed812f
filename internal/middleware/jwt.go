package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ringbook/ringbook/internal/auth"
	"github.com/ringbook/ringbook/internal/identity"
)

// JWTAuth resolves the requesting identity from a bearer token. The resolved
// user id lands in c.Locals("user_id"); everything behind this middleware can
// treat it as authoritative. Tokens older than the user's current token
// version are rejected.
func JWTAuth(tokens *auth.Service, repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		user, err := repo.FindByID(c.UserContext(), claims.Subject)
		if err != nil || user.TokenVersion != claims.Ver {
			return fiber.NewError(http.StatusUnauthorized, "token invalidated")
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_phone", user.Phone)
		return c.Next()
	}
}

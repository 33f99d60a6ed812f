package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ringbook/ringbook/internal/auth"
)

// RegisterAuthRoutes wires the public authentication endpoints. Logout lives
// behind the JWT middleware and is wired with the protected group.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	group := r.Group("/auth")
	group.Post("/login", h.Login)
	group.Post("/refresh", h.Refresh)
}

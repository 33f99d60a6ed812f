package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ringbook/ringbook/internal/spam"
)

// RegisterSpamRoutes wires the spam-marking endpoint.
func RegisterSpamRoutes(r fiber.Router, h *spam.Handler) {
	r.Post("/spam/mark", h.Mark)
}

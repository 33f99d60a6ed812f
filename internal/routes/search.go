package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ringbook/ringbook/internal/search"
)

// RegisterSearchRoutes wires the directory search endpoints.
func RegisterSearchRoutes(r fiber.Router, h *search.Handler) {
	r.Get("/search/name", h.ByName)
	r.Get("/search/phone", h.ByPhone)
}

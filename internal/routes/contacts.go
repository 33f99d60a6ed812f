package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ringbook/ringbook/internal/contact"
)

// RegisterContactRoutes wires the authenticated user's address-book endpoints.
func RegisterContactRoutes(r fiber.Router, h *contact.Handler) {
	r.Post("/contacts", h.Add)
	r.Get("/contacts", h.List)
	r.Delete("/contacts/:phone", h.Remove)
}

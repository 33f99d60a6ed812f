package search

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ringbook/ringbook/internal/phone"
)

// Handler exposes the search endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a search HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ByName handles GET /search/name?q=.
func (h *Handler) ByName(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	results, err := h.service.ByName(c.UserContext(), uid, c.Query("q"))
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			return fiber.NewError(http.StatusBadRequest, "missing search query")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if results == nil {
		results = []MatchResult{}
	}
	return c.Status(http.StatusOK).JSON(results)
}

// ByPhone handles GET /search/phone?q=.
func (h *Handler) ByPhone(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	results, err := h.service.ByPhone(c.UserContext(), uid, c.Query("q"))
	if err != nil {
		if errors.Is(err, phone.ErrInvalidNumber) {
			return fiber.NewError(http.StatusBadRequest, "invalid phone number format, use +91XXXXXXXXXX")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if results == nil {
		results = []MatchResult{}
	}
	return c.Status(http.StatusOK).JSON(results)
}

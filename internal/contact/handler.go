package contact

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ringbook/ringbook/internal/phone"
	"github.com/ringbook/ringbook/internal/validate"
)

// Handler exposes address-book HTTP endpoints for the authenticated owner.
type Handler struct {
	service *Service
}

// NewHandler builds a contact HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type addRequest struct {
	Phone string `json:"phone_number" validate:"required"`
	Name  string `json:"name" validate:"required"`
}

type entryResponse struct {
	Phone   string `json:"phone_number"`
	Name    string `json:"name"`
	AddedAt string `json:"added_at"`
}

// Add saves a contact for the authenticated user. Input problems map to 400,
// duplicates to 409, store failure to 500.
func (h *Handler) Add(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	var req addRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.service.Add(c.UserContext(), uid, req.Phone, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, phone.ErrInvalidNumber):
			return fiber.NewError(http.StatusBadRequest, "invalid phone number format, use +91XXXXXXXXXX")
		case errors.Is(err, ErrNameRequired):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrDuplicateEntry):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(entryResponse{
		Phone:   entry.ContactPhone,
		Name:    entry.ContactName,
		AddedAt: entry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// List returns the authenticated user's address book.
func (h *Handler) List(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	entries, err := h.service.List(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{
			Phone:   e.ContactPhone,
			Name:    e.ContactName,
			AddedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Remove deletes one of the authenticated user's contacts by phone.
func (h *Handler) Remove(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	err := h.service.Remove(c.UserContext(), uid, c.Params("phone"))
	if err != nil {
		switch {
		case errors.Is(err, phone.ErrInvalidNumber):
			return fiber.NewError(http.StatusBadRequest, "invalid phone number format")
		case errors.Is(err, ErrEntryNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "removed"})
}

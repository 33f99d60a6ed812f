package identity

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ringbook/ringbook/internal/phone"
	"github.com/ringbook/ringbook/internal/validate"
)

// Handler exposes registration and profile endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an identity HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone_number" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type profileResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone_number"`
	Email  string `json:"email,omitempty"`
}

// Register handles user onboarding. Validation failures are the client's
// problem; anything else out of the repository is a server failure.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Register(c.UserContext(), Credentials{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, phone.ErrInvalidNumber):
			return fiber.NewError(http.StatusBadRequest, "invalid phone number format, use +91XXXXXXXXXX")
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrPasswordTooShort):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrPhoneTaken), errors.Is(err, ErrEmailTaken):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(profileResponse{
		UserID: user.ID,
		Name:   user.Name,
		Phone:  user.Phone,
		Email:  user.Email,
	})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	user, err := h.service.Profile(c.UserContext(), uid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(profileResponse{
		UserID: user.ID,
		Name:   user.Name,
		Phone:  user.Phone,
		Email:  user.Email,
	})
}

// Deactivate deletes the authenticated account and all data it owns.
func (h *Handler) Deactivate(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	if err := h.service.Deactivate(c.UserContext(), uid); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "deleted"})
}

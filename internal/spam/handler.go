package spam

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ringbook/ringbook/internal/phone"
	"github.com/ringbook/ringbook/internal/validate"
)

// Handler exposes the spam-marking endpoint.
type Handler struct {
	service *Service
}

// NewHandler builds a spam HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type markRequest struct {
	TargetPhone string `json:"target_phone" validate:"required"`
}

type markResponse struct {
	Message       string `json:"message"`
	AlreadyMarked bool   `json:"already_marked"`
}

// Mark records a spam report from the authenticated user.
func (h *Handler) Mark(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	var req markRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.service.Mark(c.UserContext(), uid, req.TargetPhone)
	if err != nil {
		if errors.Is(err, phone.ErrInvalidNumber) {
			return fiber.NewError(http.StatusBadRequest, "invalid phone number format, use +91XXXXXXXXXX")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	if outcome.AlreadyMarked {
		return c.Status(http.StatusOK).JSON(markResponse{Message: "Already marked as spam", AlreadyMarked: true})
	}
	return c.Status(http.StatusCreated).JSON(markResponse{
		Message: fmt.Sprintf("%s marked as spam", outcome.TargetPhone),
	})
}

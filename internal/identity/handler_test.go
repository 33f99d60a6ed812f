package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/ringbook/ringbook/internal/phone"
)

type downRepository struct {
	Repository
}

func (downRepository) Create(context.Context, User) error {
	return errors.New("connection refused")
}

func newRegisterApp(repo Repository) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(repo, phone.NewNormalizer("91")))
	app.Post("/identity/register", h.Register)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func TestRegisterStoreFailureIsServerError(t *testing.T) {
	app := newRegisterApp(downRepository{NewMemoryRepository()})

	resp := postJSON(t, app, "/identity/register",
		`{"name":"Ramesh","phone_number":"9876543210","password":"hunter2hunter2"}`)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 for store failure, got %d", resp.StatusCode)
	}
}

func TestRegisterShortPasswordIsBadRequest(t *testing.T) {
	app := newRegisterApp(NewMemoryRepository())

	resp := postJSON(t, app, "/identity/register",
		`{"name":"Ramesh","phone_number":"9876543210","password":"short"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", resp.StatusCode)
	}
}

func TestRegisterDuplicatePhoneIsConflict(t *testing.T) {
	app := newRegisterApp(NewMemoryRepository())

	first := postJSON(t, app, "/identity/register",
		`{"name":"Ramesh","phone_number":"9876543210","password":"hunter2hunter2"}`)
	if first.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", first.StatusCode)
	}

	second := postJSON(t, app, "/identity/register",
		`{"name":"Suresh","phone_number":"+919876543210","password":"hunter2hunter2"}`)
	if second.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate phone, got %d", second.StatusCode)
	}
}

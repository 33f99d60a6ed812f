package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ringbook/ringbook/internal/auth"
	"github.com/ringbook/ringbook/internal/config"
	"github.com/ringbook/ringbook/internal/contact"
	"github.com/ringbook/ringbook/internal/identity"
	"github.com/ringbook/ringbook/internal/middleware"
	"github.com/ringbook/ringbook/internal/notification"
	"github.com/ringbook/ringbook/internal/phone"
	"github.com/ringbook/ringbook/internal/search"
	"github.com/ringbook/ringbook/internal/spam"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	normalizer := phone.NewNormalizer(d.Cfg.PhoneRegion)

	var identityRepo identity.Repository
	var contactRepo contact.Repository
	var spamStore spam.Store
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		contactRepo = contact.NewPostgresRepository(d.DB)
		spamStore = spam.NewPostgresStore(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		contactRepo = contact.NewMemoryRepository()
		spamStore = spam.NewMemoryStore()
	}

	identitySvc := identity.NewService(identityRepo, normalizer)
	authSvc := auth.NewService(d.Cfg, identityRepo)
	contactSvc := contact.NewService(contactRepo, normalizer)
	notifier := notification.NewLoggerNotifier(d.Logger)
	spamSvc := spam.NewService(spamStore, normalizer, notifier, d.Cfg.SpamAlertThreshold)
	searchSvc := search.NewService(identityRepo, contactRepo, spamSvc, normalizer, d.Cfg.SimilarityThreshold)

	identityHandler := identity.NewHandler(identitySvc)
	authHandler := auth.NewHandler(identitySvc, authSvc)
	contactHandler := contact.NewHandler(contactSvc)
	spamHandler := spam.NewHandler(spamSvc)
	searchHandler := search.NewHandler(searchSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	api.Post("/identity/register", identityHandler.Register)
	RegisterAuthRoutes(api, authHandler)

	// Protected routes
	jwtmw := middleware.JWTAuth(authSvc, identityRepo)
	protected := api.Group("", jwtmw)
	protected.Get("/me", identityHandler.Me)
	protected.Delete("/me", identityHandler.Deactivate)
	protected.Post("/auth/logout", authHandler.Logout)
	RegisterContactRoutes(protected, contactHandler)
	RegisterSpamRoutes(protected, spamHandler)
	RegisterSearchRoutes(protected, searchHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

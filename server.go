package alerts

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/goliatone/go-errors"
)

// NewServer assembles the fiber application: error handling, panic
// recovery, the session guard, and every route group.
func NewServer(cfg Config, repo RepositoryManager, tokens *TokenService, logger Logger) *fiber.App {
	if logger == nil {
		logger = defLogger{}
	}

	app := fiber.New(fiber.Config{
		AppName:      "community-alerts",
		ErrorHandler: NewErrorHandler(logger),
	})

	app.Use(recover.New())

	guard := NewSessionGuard(cfg, tokens, repo.Users(), logger)

	RegisterRoutes(app, cfg, repo, tokens, guard, logger)

	return app
}

// RegisterRoutes mounts the API. Message routes and /me require a session;
// users and alerts CRUD are open.
func RegisterRoutes(app *fiber.App, cfg Config, repo RepositoryManager, tokens *TokenService, guard *SessionGuard, logger Logger) {
	authController := NewAuthController(cfg, repo, tokens, logger)
	usersController := NewUsersController(repo, logger)
	alertsController := NewAlertsController(repo, logger)
	messagesController := NewMessagesController(repo, logger)

	protected := guard.Protected()

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authController.Logout)
	auth.Get("/me", protected, authController.Me)

	users := api.Group("/users")
	users.Post("/", usersController.Create)
	users.Get("/", usersController.List)
	users.Get("/:id", usersController.Get)
	users.Put("/:id", usersController.Update)
	users.Delete("/:id", usersController.Delete)

	alertsGroup := api.Group("/alerts")
	alertsGroup.Get("/", alertsController.List)
	alertsGroup.Post("/", alertsController.Create)
	alertsGroup.Get("/:id", alertsController.Get)
	alertsGroup.Put("/:id", alertsController.Update)
	alertsGroup.Delete("/:id", alertsController.Delete)

	messages := api.Group("/alerts/:id/messages", protected)
	messages.Post("/", messagesController.Create)
	messages.Get("/", messagesController.List)
	messages.Delete("/:mid", messagesController.Delete)
	messages.Post("/:mid/read", messagesController.MarkRead)
	messages.Post("/:mid/reaction", messagesController.AddReaction)
	messages.Delete("/:mid/reaction", messagesController.RemoveReaction)
}

// NewErrorHandler maps rich errors onto HTTP responses. Reason strings
// surface verbatim; anything unclassified becomes an opaque 500.
func NewErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}
	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			if fiberErr, ok := err.(*fiber.Error); ok {
				return c.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
			}
			richErr = errors.Wrap(err, errors.CategoryInternal, "an unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := statusFromError(richErr)
		if status >= fiber.StatusInternalServerError {
			logger.Error("request to %s failed: %v", c.Path(), err)
		}

		body := fiber.Map{"detail": richErr.Message}
		if richErr.TextCode != "" {
			body["text_code"] = richErr.TextCode
		}
		if fields, ok := richErr.Metadata["fields"]; ok {
			body["fields"] = fields
		}

		return c.Status(status).JSON(body)
	}
}

func statusFromError(richErr *errors.Error) int {
	if richErr.Code >= fiber.StatusBadRequest {
		return richErr.Code
	}

	switch richErr.Category {
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusConflict
	case errors.CategoryBadInput, errors.CategoryValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

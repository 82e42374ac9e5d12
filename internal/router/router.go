package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/codegrader/codegrader-api/internal/config"
	"github.com/codegrader/codegrader-api/internal/handler"
	"github.com/codegrader/codegrader-api/internal/middleware"
	"github.com/codegrader/codegrader-api/internal/models"
)

// Scoring requests each trigger a paid AI call, so submissions get a much
// tighter budget than logins.
const (
	loginRateLimit  = 10
	submitRateLimit = 5
	rateLimitWindow = time.Minute
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	AssignmentHandler *handler.AssignmentHandler
	SubmissionHandler *handler.SubmissionHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application. Authorization is
// declared here per route over the closed role set; handlers carry no role
// checks of their own.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", middleware.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	staffOnly := middleware.RequireRole(models.RoleAdmin, models.RoleTeacher)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	app.Post("/login", middleware.RateLimit("login", loginRateLimit, rateLimitWindow), deps.AuthHandler.Login)
	app.Post("/register", deps.AuthHandler.Register)

	users := app.Group("/users")
	users.Post("/", jwtMiddleware, adminOnly, deps.UserHandler.Create)
	users.Get("/me", jwtMiddleware, deps.UserHandler.Me)

	assignments := app.Group("/assignments")
	assignments.Get("/", deps.AssignmentHandler.List)
	assignments.Get("/:id", deps.AssignmentHandler.Get)
	assignments.Post("/", jwtMiddleware, staffOnly, deps.AssignmentHandler.Create)
	assignments.Put("/:id", jwtMiddleware, staffOnly, deps.AssignmentHandler.Update)
	assignments.Delete("/:id", jwtMiddleware, staffOnly, deps.AssignmentHandler.Delete)
	assignments.Post("/:id/submit", jwtMiddleware, middleware.RateLimit("submit", submitRateLimit, rateLimitWindow), deps.SubmissionHandler.Submit)

	submissions := app.Group("/submissions")
	submissions.Get("/", jwtMiddleware, staffOnly, deps.SubmissionHandler.ListAll)
	submissions.Get("/me", jwtMiddleware, deps.SubmissionHandler.ListMine)
}

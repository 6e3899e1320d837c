package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dashboard-service/internal/api/http/handlers"
	"github.com/spec-kit/dashboard-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Roster         *handlers.RosterHandler
	News           *handlers.NewsHandler
	Spotlight      *handlers.SpotlightHandler
	Notices        *handlers.NoticeHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Reads and mutations share the optional
// principal loader: unauthenticated or under-capability mutation attempts
// are silently refused downstream rather than rejected here.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/login/prefill", cfg.Auth.Prefill)

	api := app.Group("", cfg.AuthMiddleware.Optional)

	api.Get("/roster", cfg.Roster.Get)
	api.Post("/roster/reorder", cfg.Roster.Reorder)
	api.Post("/roster/:category/members", cfg.Roster.AddMember)
	api.Patch("/roster/:id", cfg.Roster.EditField)
	api.Delete("/roster/:id", cfg.Roster.Delete)
	api.Post("/roster/:id/status", cfg.Roster.ToggleStatus)
	api.Post("/roster/:id/warnings/:level", cfg.Roster.ToggleWarning)
	api.Put("/roster/:id/avatar", cfg.Roster.SetAvatar)
	api.Post("/roster/:id/move", cfg.Roster.Move)

	api.Get("/members/underreview", cfg.Roster.UnderReview)
	api.Post("/members/:name/activate", cfg.Roster.Activate)

	api.Get("/news", cfg.News.List)
	api.Post("/news", cfg.News.Post)
	api.Delete("/news/:id", cfg.News.Delete)

	api.Get("/spotlight", cfg.Spotlight.Get)
	api.Put("/spotlight", cfg.Spotlight.Set)
	api.Delete("/spotlight", cfg.Spotlight.Clear)

	app.Get("/notices", cfg.AuthMiddleware.Handle, cfg.Notices.Get)
}

package handlers

import (
	"tournament-portal/middleware"
	"tournament-portal/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService, statsService *services.StatsService) {
	// 🔓 Auth-provider callback (Gateway auth only, no user context yet)
	app.Post("/users/sync", userService.SyncUser)

	// 🔐 Authenticated routes
	me := app.Group("/users/me", middleware.UserContextMiddleware())
	me.Get("/", userService.GetMe)
	me.Get("/stats", statsService.MyStats)

	// 🔒 Admin-only
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())
	admin.Get("/users/search", userService.SearchUsers)
	admin.Get("/stats", statsService.AdminStats)
}

package handlers

import (
	"tournament-portal/middleware"
	"tournament-portal/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSubmissionRoutes(app *fiber.App, submissionService *services.SubmissionService) {
	// 🔐 Authenticated routes
	secured := app.Group("/submissions", middleware.UserContextMiddleware())
	secured.Post("/", submissionService.SubmitArtwork)
	secured.Get("/:id", submissionService.GetSubmissionByID)

	me := app.Group("/users/me", middleware.UserContextMiddleware())
	me.Get("/submissions", submissionService.GetMySubmissions)

	// 🔒 Admin-only: review queue and scoring
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())
	admin.Get("/submissions", submissionService.ListSubmissions)
	admin.Get("/submissions/:id", submissionService.GetSubmissionByID)
	admin.Patch("/submissions/:id/score", submissionService.ScoreSubmission)
}

package handlers

import (
	"tournament-portal/middleware"
	"tournament-portal/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTournamentRoutes(app *fiber.App, tournamentService *services.TournamentService, submissionService *services.SubmissionService) {
	// 🔓 Public routes (still behind Gateway auth): open tournaments only.
	// Registered before the secured group so they stay reachable without
	// user context.
	app.Get("/tournaments", tournamentService.GetOpenTournaments)
	app.Get("/tournaments/:id", tournamentService.GetTournamentByID)

	// 🔐 Authenticated routes
	secured := app.Group("/tournaments", middleware.UserContextMiddleware())
	secured.Post("/:id/register", submissionService.RegisterForTournament)
	secured.Get("/:id/my-submission", submissionService.GetMySubmissionForTournament)

	me := app.Group("/users/me", middleware.UserContextMiddleware())
	me.Get("/tournaments", submissionService.GetMyTournaments)

	// 🔒 Admin-only: tournament CRUD across every status
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())
	admin.Get("/tournaments", tournamentService.GetAllTournaments)
	admin.Post("/tournaments", tournamentService.CreateTournament)
	admin.Put("/tournaments/:id", tournamentService.UpdateTournament)
	admin.Delete("/tournaments/:id", tournamentService.DeleteTournament)
}

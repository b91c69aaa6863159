package handlers

import (
	"tournament-portal/middleware"
	"tournament-portal/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCertificateRoutes(app *fiber.App, certificateService *services.CertificateService) {
	// 🔐 Authenticated routes
	secured := app.Group("/certificates", middleware.UserContextMiddleware())
	secured.Get("/:id", certificateService.GetCertificateByID)

	me := app.Group("/users/me", middleware.UserContextMiddleware())
	me.Get("/certificates", certificateService.GetMyCertificates)

	// 🔒 Admin-only: issuance and full listing
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())
	admin.Post("/submissions/:id/certificate", certificateService.IssueCertificate)
	admin.Get("/certificates", certificateService.ListCertificates)
}

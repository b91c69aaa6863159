package handlers

import (
	"tournament-portal/middleware"
	"tournament-portal/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App, paymentService *services.PaymentService) {
	// 🔐 Authenticated routes — order creation and checkout callback
	secured := app.Group("/payments", middleware.UserContextMiddleware())
	secured.Post("/order", paymentService.CreateOrder)
	secured.Post("/confirm", paymentService.ConfirmPayment)

	me := app.Group("/users/me", middleware.UserContextMiddleware())
	me.Get("/payments", paymentService.GetMyPayments)

	// 🔒 Admin-only: full ledger
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())
	admin.Get("/payments", paymentService.ListPayments)
}

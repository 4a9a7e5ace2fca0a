package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fakturierung-local/controllers"
	"fakturierung-local/middlewares"
	"fakturierung-local/services"
)

// Register wires all HTTP routes.
func Register(app *fiber.App, auth *services.AuthService, invoices *controllers.InvoiceController) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// One load-modify-save cycle at a time
	api.Use(middlewares.SerializeWrites())

	// Public auth endpoints
	ac := controllers.NewAuthController(auth)
	api.Post("/registration", ac.Register)
	api.Post("/login", ac.Login)
	api.Post("/logout", ac.Logout)
	api.Get("/session", ac.Session)

	// Protected endpoints (session flag)
	protected := api.Group("")
	protected.Use(middlewares.RequireSession(auth))

	// Invoices
	protected.Get("/invoices", invoices.GetInvoices)
	protected.Get("/invoices/draft", invoices.NewInvoiceDraft)
	protected.Post("/invoice", invoices.CreateInvoice)
	protected.Get("/invoice/:id", invoices.GetInvoice)
	protected.Put("/invoices/:id", invoices.UpdateInvoice)
	protected.Delete("/invoices/:id", invoices.DeleteInvoice)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medibook/medibook-api/controllers"
	"github.com/medibook/medibook-api/middleware"
)

// SetupReportRoutes configures the patient-facing medical history and
// prescription feed plus the dashboard overview.
func SetupReportRoutes(app *fiber.App) {
	app.Get("/reports", middleware.Protected(), controllers.ListMyReports)
	app.Get("/prescriptions", middleware.Protected(), controllers.ListMyPrescriptions)
	app.Get("/dashboard/overview", middleware.Protected(), controllers.GetDashboardOverview)
}

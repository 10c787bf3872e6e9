package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medibook/medibook-api/controllers"
	"github.com/medibook/medibook-api/middleware"
	"github.com/medibook/medibook-api/models"
)

// SetupAppointmentRoutes configures the appointment lifecycle routes.
// Every route requires a session; the state machine enforces which role
// may trigger each transition.
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments", middleware.Protected())

	appointment.Get("/", controllers.ListAppointments)
	appointment.Post("/", middleware.RequireRole(models.RoleUser), controllers.CreateAppointment)
	appointment.Get("/:id", controllers.GetAppointment)

	appointment.Patch("/:id/confirm", controllers.ConfirmAppointment)
	appointment.Patch("/:id/complete", controllers.CompleteAppointment)
	appointment.Patch("/:id/cancel", controllers.CancelAppointment)
	appointment.Patch("/:id/reschedule", controllers.RescheduleAppointment)
	appointment.Patch("/:id/accept-reschedule", controllers.AcceptReschedule)

	appointment.Post("/:id/report", controllers.SubmitReport)
	appointment.Get("/:id/report", controllers.GetReport)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medibook/medibook-api/controllers"
	"github.com/medibook/medibook-api/middleware"
	"github.com/medibook/medibook-api/models"
)

// SetupDoctorRoutes configures doctor search, self-registration and the
// admin approval decision.
func SetupDoctorRoutes(app *fiber.App) {
	doctor := app.Group("/doctors")
	doctor.Get("/", controllers.ListDoctors)
	doctor.Get("/:id", controllers.GetDoctor)
	doctor.Post("/register", middleware.Protected(), controllers.RegisterDoctor)
	doctor.Patch("/:id/status",
		middleware.Protected(),
		middleware.RequireRole(models.RoleAdmin),
		controllers.UpdateDoctorStatus)
}

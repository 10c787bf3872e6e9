package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medibook/medibook-api/controllers"
)

// SetupClinicRoutes configures the public clinic directory routes that
// feed the booking flow.
func SetupClinicRoutes(app *fiber.App) {
	clinic := app.Group("/clinics")
	clinic.Get("/", controllers.ListClinics)
	clinic.Get("/:id/specialties", controllers.ListClinicSpecialties)
	clinic.Get("/:id/specialties/:specialtyId/doctors", controllers.ListSpecialtyDoctors)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medibook/medibook-api/controllers"
	"github.com/medibook/medibook-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	auth.Get("/me", middleware.Protected(), controllers.GetMe)
}

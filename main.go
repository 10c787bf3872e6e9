package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/medibook/medibook-api/catalog"
	"github.com/medibook/medibook-api/controllers"
	"github.com/medibook/medibook-api/cron"
	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/logger"
	"github.com/medibook/medibook-api/redis"
	"github.com/medibook/medibook-api/routes"
)

func main() {
	// missing .env falls back to the process environment
	_ = godotenv.Load()
	logger.Init()
	defer logger.Sync()

	db.Init()
	if os.Getenv("AUTO_MIGRATE") == "true" {
		db.Migrate()
	}
	redis.InitRedis()

	controllers.Catalog = catalog.NewService(db.DB, redis.Client)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	routes.SetupAuthRoutes(app)
	routes.SetupClinicRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupReportRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	if err := app.Listen(":" + port); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}

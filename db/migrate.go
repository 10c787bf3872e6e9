package db

import (
	"go.uber.org/zap"

	"github.com/medibook/medibook-api/logger"
	"github.com/medibook/medibook-api/models"
)

// Migrate runs AutoMigrate for every entity. Only invoked explicitly.
func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Clinic{},
		&models.Specialty{},
		&models.Doctor{},
		&models.Appointment{},
		&models.MedicalReport{},
		&models.PrescriptionItem{},
	)
	if err != nil {
		logger.Log.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Log.Info("migrations applied")
}

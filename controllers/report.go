package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/models"
	"github.com/medibook/medibook-api/stats"
	"github.com/medibook/medibook-api/utils"
)

// SubmitReport attaches the clinical outcome to a completed appointment.
// Only the treating doctor may submit, and only once per appointment.
func SubmitReport(c *fiber.Ctx) error {
	appointment, err := loadAppointment(c)
	if err != nil {
		return nil
	}

	if c.Locals("role").(models.Role) != models.RoleDoctor {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Only the treating doctor may submit a report",
		})
	}
	if appointment.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "A report may only be attached to a completed appointment",
		})
	}

	var existing models.MedicalReport
	if db.DB.Where("appointment_id = ?", appointment.ID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "A report already exists for this appointment",
		})
	}

	var report models.MedicalReport
	if err := c.BodyParser(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if report.Condition == "" || report.TreatmentMethod == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ValidationResponse{
			Message: "Condition and treatment method are required",
		})
	}

	report.ID = 0
	report.AppointmentID = appointment.ID
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&report).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save report",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReport returns the report attached to an appointment, restricted to
// its participants and admins.
func GetReport(c *fiber.Ctx) error {
	appointment, err := loadAppointment(c)
	if err != nil {
		return nil
	}

	var report models.MedicalReport
	if err := db.DB.Preload("Prescription").
		Where("appointment_id = ?", appointment.ID).
		First(&report).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "No report for this appointment",
			Error:   err.Error(),
		})
	}
	return c.JSON(report)
}

// ListMyReports returns the session patient's medical history, newest
// first.
func ListMyReports(c *fiber.Ctx) error {
	reports, err := reportsForPatient(c.Locals("userID").(uint))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reports",
			Error:   err.Error(),
		})
	}
	return c.JSON(reports)
}

// ListMyPrescriptions flattens the patient's reports into the
// doctor-attributed prescription feed.
func ListMyPrescriptions(c *fiber.Ctx) error {
	reports, err := reportsForPatient(c.Locals("userID").(uint))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reports",
			Error:   err.Error(),
		})
	}

	views := stats.ExtractPrescriptions(reports, time.Now())
	return c.JSON(fiber.Map{
		"prescriptions": views,
		"active_count":  stats.CountActivePrescriptions(views),
	})
}

func reportsForPatient(userID uint) ([]models.MedicalReport, error) {
	var reports []models.MedicalReport
	err := db.DB.
		Preload("Prescription").
		Preload("Appointment").
		Preload("Appointment.Doctor").
		Joins("JOIN appointments ON appointments.id = medical_reports.appointment_id").
		Where("appointments.user_id = ?", userID).
		Order("medical_reports.created_at desc").
		Find(&reports).Error
	return reports, err
}

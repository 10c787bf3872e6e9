package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/models"
	"github.com/medibook/medibook-api/stats"
	"github.com/medibook/medibook-api/utils"
)

// GetDashboardOverview returns the role-scoped status counts. Counts are
// recomputed from the live collection on every call.
func GetDashboardOverview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.Role)

	query := db.DB.Model(&models.Appointment{})
	switch role {
	case models.RoleDoctor:
		doctor, err := doctorForUser(userID)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
				Message: "No doctor profile for this account",
			})
		}
		query = query.Where("doctor_id = ?", doctor.ID)
	case models.RoleAdmin:
	default:
		query = query.Where("user_id = ?", userID)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	overview := fiber.Map{
		"appointments": stats.CountByStatus(appointments),
		"last_updated": time.Now(),
	}

	if role == models.RoleAdmin {
		var doctors []models.Doctor
		if err := db.DB.Find(&doctors).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to fetch doctors",
				Error:   err.Error(),
			})
		}
		overview["pending_doctors"] = stats.CountPendingDoctors(doctors)
	}

	return c.JSON(overview)
}

package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/logger"
	"github.com/medibook/medibook-api/models"
	"github.com/medibook/medibook-api/pkg/queryparams"
	"github.com/medibook/medibook-api/utils"
)

// RegisterDoctor handles doctor self-registration. The account starts in
// the pending state and stays out of the booking flow until an admin
// approves it.
func RegisterDoctor(c *fiber.Ctx) error {
	var doctor models.Doctor
	if err := c.BodyParser(&doctor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if doctor.FullName == "" || doctor.Email == "" || doctor.SpecialtyID == 0 || doctor.ClinicID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ValidationResponse{
			Message: "Missing required fields",
		})
	}

	doctor.UserID = c.Locals("userID").(uint)
	var existing models.Doctor
	if db.DB.Where("user_id = ?", doctor.UserID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "A doctor profile already exists for this account",
		})
	}

	var clinic models.Clinic
	if err := db.DB.Preload("Specialties").First(&clinic, doctor.ClinicID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Clinic not found",
			Error:   err.Error(),
		})
	}
	if !clinic.HasSpecialty(doctor.SpecialtyID) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Specialty is not offered at the selected clinic",
		})
	}

	if err := db.DB.Create(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to register doctor",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// ListDoctors returns doctors filtered by the canonical list parameters:
// status, free-text name and optional specialty, paginated.
func ListDoctors(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid query parameters",
			Error:   err.Error(),
		})
	}
	params = queryparams.Normalize(params)

	query := db.DB.Model(&models.Doctor{}).Preload("Specialty").Preload("Clinic")

	if params.HasStatus() {
		status, err := parseDoctorStatus(params.Status)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid status filter",
				Error:   err.Error(),
			})
		}
		query = query.Where("doctors.status = ?", status)
	}

	if specialtyID := c.QueryInt("specialty_id"); specialtyID > 0 {
		query = query.Where("doctors.specialty_id = ?", specialtyID)
	}

	if params.Name != "" {
		// a record matches when any searchable name field contains the query
		like := fmt.Sprintf("%%%s%%", params.Name)
		query = query.
			Joins("LEFT JOIN specialties ON specialties.id = doctors.specialty_id").
			Joins("LEFT JOIN clinics ON clinics.id = doctors.clinic_id").
			Where("doctors.full_name ILIKE ? OR specialties.name ILIKE ? OR clinics.name ILIKE ?",
				like, like, like)
	}

	var total int64
	query.Count(&total)

	var doctors []models.Doctor
	if err := query.Limit(params.Limit).Offset(params.Offset()).Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"doctors": doctors,
		"total":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// GetDoctor returns a doctor with specialty and clinic preloaded.
func GetDoctor(c *fiber.Ctx) error {
	var doctor models.Doctor
	if err := db.DB.Preload("Specialty").Preload("Clinic").First(&doctor, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctor)
}

// UpdateDoctorStatus applies an admin approval decision. The request
// carries the numeric wire code (Active=1, Rejected=3); rejection requires
// a non-empty reason.
func UpdateDoctorStatus(c *fiber.Ctx) error {
	type statusRequest struct {
		Status int    `json:"status"`
		Reason string `json:"reason"`
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	target, err := models.DoctorStatusFromCode(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unknown doctor status",
			Error:   err.Error(),
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	role := c.Locals("role").(models.Role)
	switch target {
	case models.DoctorActive:
		err = doctor.Approve(role)
	case models.DoctorRejected:
		err = doctor.Reject(role, req.Reason)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "A doctor cannot be moved back to pending",
		})
	}
	if err != nil {
		return transitionErrorResponse(c, err)
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&doctor).
			Select("status", "reject_reason").
			Updates(map[string]interface{}{
				"status":        doctor.Status,
				"reject_reason": doctor.RejectReason,
			}).Error; err != nil {
			return err
		}
		// approval upgrades the linked account to the doctor role
		if doctor.Status == models.DoctorActive && doctor.UserID != 0 {
			return tx.Model(&models.User{}).
				Where("id = ?", doctor.UserID).
				Update("role", models.RoleDoctor).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update doctor status",
			Error:   err.Error(),
		})
	}

	// who is bookable just changed
	Catalog.InvalidateDoctors(c.Context(), doctor.ClinicID, doctor.SpecialtyID)

	notifyDoctorDecision(&doctor)

	// return the server-authoritative record
	if err := db.DB.Preload("Specialty").Preload("Clinic").First(&doctor, doctor.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reload doctor",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctor)
}

func parseDoctorStatus(s string) (models.DoctorStatus, error) {
	switch models.DoctorStatus(s) {
	case models.DoctorActive, models.DoctorPending, models.DoctorRejected:
		return models.DoctorStatus(s), nil
	}
	if code, err := strconv.Atoi(s); err == nil {
		return models.DoctorStatusFromCode(code)
	}
	return "", fmt.Errorf("unknown doctor status %q", s)
}

// transitionErrorResponse maps domain transition errors onto HTTP codes.
func transitionErrorResponse(c *fiber.Ctx, err error) error {
	var invalid *models.InvalidTransitionError
	var unauthorized *models.UnauthorizedTransitionError
	switch {
	case errors.Is(err, models.ErrMissingReason):
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "A non-empty reason is required",
			Error:   err.Error(),
		})
	case errors.Is(err, models.ErrMissingDate):
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "A new appointment date is required",
			Error:   err.Error(),
		})
	case errors.As(err, &invalid):
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Invalid status transition",
			Error:   err.Error(),
		})
	case errors.As(err, &unauthorized):
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You don't have permission to perform this action",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
		Message: "Failed to apply transition",
		Error:   err.Error(),
	})
}

func notifyDoctorDecision(doctor *models.Doctor) {
	subject := "Kết quả xét duyệt hồ sơ bác sĩ"
	body := fmt.Sprintf(`
		<p>Chào %s,</p>
		<p>Trạng thái hồ sơ của bạn: <strong>%s</strong></p>
	`, doctor.FullName, doctor.Status.Label())
	if doctor.Status == models.DoctorRejected {
		body += fmt.Sprintf("<p>Lý do: %s</p>", doctor.RejectReason)
	}
	if err := utils.SendEmail(doctor.Email, subject, body); err != nil {
		logger.Log.Warn("failed to send doctor decision email",
			zap.Uint("doctor_id", doctor.ID), zap.Error(err))
	}
}

package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medibook/medibook-api/booking"
	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/logger"
	"github.com/medibook/medibook-api/models"
	"github.com/medibook/medibook-api/pkg/queryparams"
	"github.com/medibook/medibook-api/utils"
)

// CreateAppointment handles the booking submission. The payload is the
// wizard form; it is validated locally before any row is touched, then the
// clinic/specialty/doctor chain is verified against the directory.
func CreateAppointment(c *fiber.Ctx) error {
	var form booking.Form
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if res := booking.Validate(form); !res.Valid {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ValidationResponse{
			Message:       "Missing required fields",
			MissingFields: res.MissingFields,
		})
	}
	if errs := booking.CheckConstraints(form, time.Now()); len(errs) > 0 {
		fields := make([]string, len(errs))
		for i, fe := range errs {
			fields[i] = fe.Field
		}
		return c.Status(fiber.StatusBadRequest).JSON(utils.ValidationResponse{
			Message:       "Invalid field values",
			MissingFields: fields,
		})
	}

	userID := c.Locals("userID").(uint)

	var clinic models.Clinic
	if err := db.DB.Preload("Specialties").First(&clinic, form.ClinicID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Clinic not found",
			Error:   err.Error(),
		})
	}
	if !clinic.HasSpecialty(form.SpecialtyID) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Specialty is not offered at the selected clinic",
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, form.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	if doctor.ClinicID != form.ClinicID || doctor.SpecialtyID != form.SpecialtyID {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Doctor does not practice the selected specialty at this clinic",
		})
	}
	if !doctor.Bookable() {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Doctor is not accepting appointments",
		})
	}

	appointment := models.Appointment{
		UserID:          userID,
		DoctorID:        form.DoctorID,
		ClinicID:        form.ClinicID,
		AppointmentDate: form.AppointmentDate,
		Reason:          form.Reason,
		Notes:           form.Notes,
	}
	if err := db.DB.Create(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	notifyBooking(&appointment, &doctor)

	if err := db.DB.Preload("Doctor").Preload("Clinic").First(&appointment, appointment.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reload appointment",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// ListAppointments returns the session owner's appointments filtered by
// the canonical list parameters. Patients see their own bookings, doctors
// their schedule, admins everything.
func ListAppointments(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid query parameters",
			Error:   err.Error(),
		})
	}
	params = queryparams.Normalize(params)

	query := db.DB.Model(&models.Appointment{}).
		Preload("Doctor").Preload("Clinic").Preload("User")

	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.Role)
	switch role {
	case models.RoleDoctor:
		doctor, err := doctorForUser(userID)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
				Message: "No doctor profile for this account",
			})
		}
		query = query.Where("appointments.doctor_id = ?", doctor.ID)
	case models.RoleAdmin:
		// admins see every appointment
	default:
		query = query.Where("appointments.user_id = ?", userID)
	}

	if params.HasStatus() {
		query = query.Where("appointments.status = ?", params.Status)
	}
	if params.Date != "" {
		day, err := time.Parse("2006-01-02", params.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid date format, use YYYY-MM-DD",
			})
		}
		query = query.Where("appointments.appointment_date >= ? AND appointments.appointment_date < ?",
			day, day.Add(24*time.Hour))
	}
	if params.Name != "" {
		like := fmt.Sprintf("%%%s%%", params.Name)
		query = query.
			Joins("LEFT JOIN doctors ON doctors.id = appointments.doctor_id").
			Joins("LEFT JOIN clinics ON clinics.id = appointments.clinic_id").
			Where("doctors.full_name ILIKE ? OR clinics.name ILIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var appointments []models.Appointment
	if err := query.Order("appointment_date desc").
		Limit(params.Limit).Offset(params.Offset()).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         params.Page,
		"limit":        params.Limit,
	})
}

// GetAppointment returns one appointment, restricted to its participants
// and admins.
func GetAppointment(c *fiber.Ctx) error {
	appointment, err := loadAppointment(c)
	if err != nil {
		return nil
	}
	return c.JSON(appointment)
}

// ConfirmAppointment moves a pending appointment to confirmed.
func ConfirmAppointment(c *fiber.Ctx) error {
	return applyTransition(c, func(a *models.Appointment, role models.Role) error {
		return a.Transition(models.StatusConfirmed, role, "")
	})
}

// CompleteAppointment closes out a confirmed appointment. The treating
// doctor is expected to attach a medical report afterwards.
func CompleteAppointment(c *fiber.Ctx) error {
	return applyTransition(c, func(a *models.Appointment, role models.Role) error {
		if err := a.Transition(models.StatusCompleted, role, ""); err != nil {
			return err
		}
		// bump the doctor's completed-appointment tally
		return db.DB.Model(&models.Doctor{}).
			Where("id = ?", a.DoctorID).
			UpdateColumn("total_appointments", gorm.Expr("total_appointments + 1")).Error
	})
}

// CancelAppointment cancels a pending or confirmed appointment with a
// mandatory reason.
func CancelAppointment(c *fiber.Ctx) error {
	type cancelRequest struct {
		Reason string `json:"reason"`
	}
	var req cancelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	return applyTransition(c, func(a *models.Appointment, role models.Role) error {
		if err := a.Transition(models.StatusCancelled, role, req.Reason); err != nil {
			return err
		}
		notifyCancellation(a)
		return nil
	})
}

// RescheduleAppointment proposes a new date for a confirmed appointment.
func RescheduleAppointment(c *fiber.Ctx) error {
	type rescheduleRequest struct {
		AppointmentDate time.Time `json:"appointment_date"`
	}
	var req rescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	return applyTransition(c, func(a *models.Appointment, role models.Role) error {
		return a.Reschedule(req.AppointmentDate, role)
	})
}

// AcceptReschedule confirms the proposed date, moving the appointment back
// to confirmed.
func AcceptReschedule(c *fiber.Ctx) error {
	return applyTransition(c, func(a *models.Appointment, role models.Role) error {
		return a.Transition(models.StatusConfirmed, role, "")
	})
}

// errResponded signals that the handler already wrote an error response.
var errResponded = errors.New("response already written")

// applyTransition loads the appointment, checks that the session may act
// on it, applies the domain transition and persists the result. The
// response carries the reloaded, server-authoritative record.
func applyTransition(c *fiber.Ctx, apply func(*models.Appointment, models.Role) error) error {
	appointment, err := loadAppointment(c)
	if err != nil {
		return nil
	}

	role := c.Locals("role").(models.Role)
	if err := apply(appointment, role); err != nil {
		return transitionErrorResponse(c, err)
	}

	if err := db.DB.Model(appointment).
		Select("status", "cancellation_reason", "appointment_date").
		Updates(map[string]interface{}{
			"status":              appointment.Status,
			"cancellation_reason": appointment.CancellationReason,
			"appointment_date":    appointment.AppointmentDate,
		}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Preload("Doctor").Preload("Clinic").Preload("User").
		First(appointment, appointment.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reload appointment",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// loadAppointment fetches the appointment and enforces that the session
// belongs to its patient, its doctor or an admin. On failure the error
// response is already written and errResponded comes back.
func loadAppointment(c *fiber.Ctx) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := db.DB.Preload("Doctor").Preload("Clinic").Preload("User").
		First(&appointment, c.Params("id")).Error; err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
		return nil, errResponded
	}

	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(models.Role)
	switch role {
	case models.RoleAdmin:
	case models.RoleDoctor:
		doctor, err := doctorForUser(userID)
		if err != nil || doctor.ID != appointment.DoctorID {
			_ = c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
				Message: "You are not the treating doctor for this appointment",
			})
			return nil, errResponded
		}
	default:
		if appointment.UserID != userID {
			_ = c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
				Message: "You are not a participant in this appointment",
			})
			return nil, errResponded
		}
	}
	return &appointment, nil
}

func doctorForUser(userID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := db.DB.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func notifyBooking(appointment *models.Appointment, doctor *models.Doctor) {
	var patient models.User
	if err := db.DB.First(&patient, appointment.UserID).Error; err != nil {
		logger.Log.Warn("failed to load patient for booking email", zap.Error(err))
		return
	}
	body := fmt.Sprintf(`
		<p>Chào %s,</p>
		<p>Lịch khám của bạn đã được tạo và đang chờ xác nhận.</p>
		<ul>
			<li><strong>Bác sĩ:</strong> %s</li>
			<li><strong>Thời gian:</strong> %s</li>
			<li><strong>Lý do khám:</strong> %s</li>
		</ul>
	`, patient.FullName, doctor.FullName,
		appointment.AppointmentDate.Format("2006-01-02 15:04"), appointment.Reason)
	if err := utils.SendEmail(patient.Email, "Đặt lịch khám thành công", body); err != nil {
		logger.Log.Warn("failed to send booking email",
			zap.Uint("appointment_id", appointment.ID), zap.Error(err))
	}
}

func notifyCancellation(appointment *models.Appointment) {
	var patient models.User
	if err := db.DB.First(&patient, appointment.UserID).Error; err != nil {
		logger.Log.Warn("failed to load patient for cancellation email", zap.Error(err))
		return
	}
	body := fmt.Sprintf(`
		<p>Chào %s,</p>
		<p>Lịch khám ngày %s đã bị hủy.</p>
		<p><strong>Lý do:</strong> %s</p>
	`, patient.FullName,
		appointment.AppointmentDate.Format("2006-01-02 15:04"),
		appointment.CancellationReason)
	if err := utils.SendEmail(patient.Email, "Lịch khám đã bị hủy", body); err != nil {
		logger.Log.Warn("failed to send cancellation email",
			zap.Uint("appointment_id", appointment.ID), zap.Error(err))
	}
}

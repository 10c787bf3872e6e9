package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/medibook/medibook-api/db"
	"github.com/medibook/medibook-api/logger"
	"github.com/medibook/medibook-api/models"
	"github.com/medibook/medibook-api/utils"
)

// StartCronJobs initializes and starts the scheduler for appointment
// reminders.
func StartCronJobs() {
	c := cron.New()
	// check every minute for appointments starting in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		logger.Log.Fatal("failed to add cron job", zap.Error(err))
	}
	c.Start()
	logger.Log.Info("cron scheduler started for appointment reminders")
}

// sendAppointmentReminders mails patients whose confirmed appointment
// starts in roughly one hour.
func sendAppointmentReminders() {
	var appointments []models.Appointment
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("User").Preload("Doctor").Preload("Clinic").
		Where("status = ? AND appointment_date BETWEEN ? AND ?",
			models.StatusConfirmed, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		logger.Log.Error("failed to fetch appointments for reminders", zap.Error(err))
		return
	}

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			logger.Log.Warn("failed to send reminder",
				zap.Uint("appointment_id", appointment.ID), zap.Error(err))
			continue
		}
		logger.Log.Info("sent appointment reminder",
			zap.Uint("appointment_id", appointment.ID),
			zap.String("email", appointment.User.Email))
	}
}

func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Nhắc lịch khám sắp tới"
	body := fmt.Sprintf(`
		<p>Chào %s,</p>
		<p>Bạn có lịch khám trong một giờ tới.</p>
		<ul>
			<li><strong>Bác sĩ:</strong> %s</li>
			<li><strong>Phòng khám:</strong> %s</li>
			<li><strong>Thời gian:</strong> %s</li>
		</ul>
		<p>Vui lòng đến đúng giờ. Nếu cần dời hoặc hủy lịch, hãy liên hệ sớm.</p>
	`, appointment.User.FullName, appointment.Doctor.FullName, appointment.Clinic.Name,
		appointment.AppointmentDate.Format("2006-01-02 15:04"))

	return utils.SendEmail(appointment.User.Email, subject, body)
}

package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibook/medibook-api/models"
)

func TestCountByStatusEmpty(t *testing.T) {
	assert.Equal(t, StatusCounts{}, CountByStatus(nil))
	assert.Equal(t, StatusCounts{}, CountByStatus([]models.Appointment{}))
}

func TestCountByStatusPartitions(t *testing.T) {
	appointments := []models.Appointment{
		{Status: models.StatusPending},
		{Status: models.StatusPending},
		{Status: models.StatusConfirmed},
		{Status: models.StatusCompleted},
		{Status: models.StatusCancelled},
		{Status: models.StatusRescheduled},
	}
	counts := CountByStatus(appointments)
	assert.Equal(t, 6, counts.Total)
	assert.Equal(t, 2, counts.Waiting)
	assert.Equal(t, 1, counts.Confirmed)
	assert.Equal(t, 1, counts.Completed)
}

func reportAt(date time.Time, doctor string, medicines ...string) models.MedicalReport {
	items := make([]models.PrescriptionItem, len(medicines))
	for i, m := range medicines {
		items[i] = models.PrescriptionItem{Medicine: m, Dosage: "1 viên", Duration: "7 ngày"}
	}
	return models.MedicalReport{
		Appointment: models.Appointment{
			AppointmentDate: date,
			Doctor:          models.Doctor{FullName: doctor},
		},
		Prescription: items,
	}
}

func TestExtractPrescriptionsWindowAndOrder(t *testing.T) {
	now := time.Now()
	reports := []models.MedicalReport{
		reportAt(now.AddDate(0, 0, -40), "BS. Trần Văn An", "Paracetamol"),
		reportAt(now.AddDate(0, 0, -10), "BS. Lê Thị Bình", "Amoxicillin"),
	}

	views := ExtractPrescriptions(reports, now)
	require.Len(t, views, 2)

	// newest first
	assert.Equal(t, "Amoxicillin", views[0].Medicine)
	assert.Equal(t, PrescriptionActive, views[0].Status)
	assert.Equal(t, "BS. Lê Thị Bình", views[0].DoctorName)

	assert.Equal(t, "Paracetamol", views[1].Medicine)
	assert.Equal(t, PrescriptionCompleted, views[1].Status)

	assert.Equal(t, 1, CountActivePrescriptions(views))
}

func TestExtractPrescriptionsFlattens(t *testing.T) {
	now := time.Now()
	reports := []models.MedicalReport{
		reportAt(now.AddDate(0, 0, -1), "BS. Phạm Minh Châu", "Vitamin C", "Kẽm"),
	}
	views := ExtractPrescriptions(reports, now)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, "BS. Phạm Minh Châu", v.DoctorName)
		assert.Equal(t, PrescriptionActive, v.Status)
	}
}

func TestExtractPrescriptionsEmpty(t *testing.T) {
	assert.Empty(t, ExtractPrescriptions(nil, time.Now()))
}

func TestCountPendingDoctors(t *testing.T) {
	doctors := []models.Doctor{
		{Status: models.DoctorPending},
		{Status: models.DoctorActive},
		{Status: models.DoctorPending},
		{Status: models.DoctorRejected},
	}
	assert.Equal(t, 2, CountPendingDoctors(doctors))
	assert.Equal(t, 0, CountPendingDoctors(nil))
}

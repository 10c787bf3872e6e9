// Package stats derives secondary views from already-fetched collections.
// Everything here is pure: no queries, no caching, recompute on every call.
package stats

import (
	"sort"
	"time"

	"github.com/medibook/medibook-api/models"
)

// ActivePrescriptionWindow is how far back a prescribing appointment may
// lie for its prescriptions to still count as active. Placeholder policy
// constant, not a verified clinical rule.
const ActivePrescriptionWindow = 30 * 24 * time.Hour

const (
	PrescriptionActive    = "active"
	PrescriptionCompleted = "completed"
)

// StatusCounts partitions an appointment collection by status.
type StatusCounts struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Waiting   int `json:"waiting"`
	Completed int `json:"completed"`
}

// CountByStatus tallies appointments per status. An empty collection
// yields all zeroes.
func CountByStatus(appointments []models.Appointment) StatusCounts {
	counts := StatusCounts{Total: len(appointments)}
	for _, a := range appointments {
		switch a.Status {
		case models.StatusConfirmed:
			counts.Confirmed++
		case models.StatusPending:
			counts.Waiting++
		case models.StatusCompleted:
			counts.Completed++
		}
	}
	return counts
}

// PrescriptionView is one flattened, doctor-attributed prescription entry.
type PrescriptionView struct {
	Medicine     string    `json:"medicine"`
	Dosage       string    `json:"dosage"`
	Duration     string    `json:"duration"`
	DoctorName   string    `json:"doctor_name"`
	PrescribedAt time.Time `json:"prescribed_at"`
	Status       string    `json:"status"`
}

// ExtractPrescriptions flattens every report's prescription list into one
// slice sorted by prescribing date, newest first. An entry is active while
// its appointment date lies within the last 30 days relative to now.
// Reports must carry their Appointment (and its Doctor) preloaded.
func ExtractPrescriptions(reports []models.MedicalReport, now time.Time) []PrescriptionView {
	var views []PrescriptionView
	cutoff := now.Add(-ActivePrescriptionWindow)
	for _, r := range reports {
		status := PrescriptionCompleted
		if r.Appointment.AppointmentDate.After(cutoff) {
			status = PrescriptionActive
		}
		for _, item := range r.Prescription {
			views = append(views, PrescriptionView{
				Medicine:     item.Medicine,
				Dosage:       item.Dosage,
				Duration:     item.Duration,
				DoctorName:   r.Appointment.Doctor.FullName,
				PrescribedAt: r.Appointment.AppointmentDate,
				Status:       status,
			})
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].PrescribedAt.After(views[j].PrescribedAt)
	})
	return views
}

// CountActivePrescriptions counts the entries still inside the active
// window.
func CountActivePrescriptions(views []PrescriptionView) int {
	n := 0
	for _, v := range views {
		if v.Status == PrescriptionActive {
			n++
		}
	}
	return n
}

// CountPendingDoctors counts doctors awaiting an approval decision.
func CountPendingDoctors(doctors []models.Doctor) int {
	n := 0
	for _, d := range doctors {
		if d.Status == models.DoctorPending {
			n++
		}
	}
	return n
}

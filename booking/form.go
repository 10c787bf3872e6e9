package booking

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	FieldClinic    = "clinicId"
	FieldSpecialty = "specialtyId"
	FieldDoctor    = "doctorId"
	FieldReason    = "reason"
)

const (
	MaxReasonLength = 200
	MaxNotesLength  = 500
)

// Form holds everything the booking flow collects before submission.
// A zero ID means the field has not been chosen yet.
type Form struct {
	ClinicID        uint      `json:"clinic_id"`
	SpecialtyID     uint      `json:"specialty_id"`
	DoctorID        uint      `json:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes"`
}

// ValidationResult names every required field that is still missing.
type ValidationResult struct {
	Valid         bool     `json:"valid"`
	MissingFields []string `json:"missing_fields"`
}

// Validate checks the submission precondition: clinic, specialty, doctor
// and reason must all be set. It is pure and never touches the network.
func Validate(f Form) ValidationResult {
	var missing []string
	if f.ClinicID == 0 {
		missing = append(missing, FieldClinic)
	}
	if f.SpecialtyID == 0 {
		missing = append(missing, FieldSpecialty)
	}
	if f.DoctorID == 0 {
		missing = append(missing, FieldDoctor)
	}
	if strings.TrimSpace(f.Reason) == "" {
		missing = append(missing, FieldReason)
	}
	return ValidationResult{Valid: len(missing) == 0, MissingFields: missing}
}

// FieldError is a constraint violation on a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CheckConstraints validates the phase-two field constraints: the reason
// must fit in 200 characters, notes in 500, and the date (when set) must
// lie in the future relative to now. The server remains the final
// authority on the date.
func CheckConstraints(f Form, now time.Time) []FieldError {
	var errs []FieldError
	if utf8.RuneCountInString(f.Reason) > MaxReasonLength {
		errs = append(errs, FieldError{Field: FieldReason, Message: "reason must be at most 200 characters"})
	}
	if utf8.RuneCountInString(f.Notes) > MaxNotesLength {
		errs = append(errs, FieldError{Field: "notes", Message: "notes must be at most 500 characters"})
	}
	if !f.AppointmentDate.IsZero() && !f.AppointmentDate.After(now) {
		errs = append(errs, FieldError{Field: "appointmentDate", Message: "appointment date must be in the future"})
	}
	return errs
}

package models

import (
	"gorm.io/gorm"
)

// MedicalReport is the clinical outcome a doctor attaches to a completed
// appointment. One report per appointment; created by the treating doctor
// and corrected in place rather than versioned.
type MedicalReport struct {
	gorm.Model
	AppointmentID   uint               `json:"appointment_id" gorm:"uniqueIndex"`
	Appointment     Appointment        `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID"`
	Condition       string             `json:"condition"`
	TreatmentMethod string             `json:"treatment_method"`
	Prescription    []PrescriptionItem `json:"prescription,omitempty" gorm:"foreignKey:ReportID"`
	Notes           string             `json:"notes"`
}

type PrescriptionItem struct {
	gorm.Model
	ReportID uint   `json:"report_id"`
	Medicine string `json:"medicine"`
	Dosage   string `json:"dosage"`
	Duration string `json:"duration"`
}

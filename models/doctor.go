package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DoctorStatus is the approval state of a self-registered doctor account.
// The remote clients exchange these as numeric codes (Active=1, Pending=2,
// Rejected=3); the codes are decoded at the API boundary and never leak
// into business logic.
type DoctorStatus string

const (
	DoctorActive   DoctorStatus = "active"
	DoctorPending  DoctorStatus = "pending"
	DoctorRejected DoctorStatus = "rejected"
)

const (
	doctorCodeActive   = 1
	doctorCodePending  = 2
	doctorCodeRejected = 3
)

// DoctorStatusFromCode decodes the wire code used by the mobile clients.
func DoctorStatusFromCode(code int) (DoctorStatus, error) {
	switch code {
	case doctorCodeActive:
		return DoctorActive, nil
	case doctorCodePending:
		return DoctorPending, nil
	case doctorCodeRejected:
		return DoctorRejected, nil
	}
	return "", fmt.Errorf("unknown doctor status code %d", code)
}

// Code returns the numeric wire representation of the status.
func (s DoctorStatus) Code() int {
	switch s {
	case DoctorActive:
		return doctorCodeActive
	case DoctorRejected:
		return doctorCodeRejected
	default:
		return doctorCodePending
	}
}

// Label returns the display name shown in the apps.
func (s DoctorStatus) Label() string {
	switch s {
	case DoctorActive:
		return "Đang hoạt động"
	case DoctorRejected:
		return "Đã từ chối"
	default:
		return "Chờ phê duyệt"
	}
}

type Doctor struct {
	ID                uint         `json:"id" gorm:"primaryKey"`
	UserID            uint         `json:"user_id" gorm:"uniqueIndex"`
	FullName          string       `json:"full_name"`
	Email             string       `json:"email" gorm:"unique"`
	PhoneNumber       string       `json:"phone_number"`
	SpecialtyID       uint         `json:"specialty_id"`
	Specialty         Specialty    `json:"specialty,omitempty" gorm:"foreignKey:SpecialtyID"`
	ClinicID          uint         `json:"clinic_id"`
	Clinic            Clinic       `json:"clinic,omitempty" gorm:"foreignKey:ClinicID"`
	ExperienceYears   int          `json:"experience_years"`
	Qualifications    []string     `json:"qualifications" gorm:"serializer:json"`
	Rating            float64      `json:"rating"`
	TotalReviews      int          `json:"total_reviews"`
	TotalAppointments int          `json:"total_appointments"`
	Status            DoctorStatus `json:"status" gorm:"type:varchar(16);default:'pending'"`
	RejectReason      string       `json:"reject_reason,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// BeforeCreate ensures a freshly registered doctor starts in the pending
// state regardless of what the request carried.
func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	d.Status = DoctorPending
	d.RejectReason = ""
	return nil
}

// Approve moves a pending doctor to active, making the doctor eligible for
// selection in the booking flow. Only an admin may trigger this.
func (d *Doctor) Approve(by Role) error {
	if by != RoleAdmin {
		return &UnauthorizedTransitionError{Entity: "doctor", To: string(DoctorActive), Role: by}
	}
	if d.Status != DoctorPending {
		return &InvalidTransitionError{Entity: "doctor", From: string(d.Status), To: string(DoctorActive)}
	}
	d.Status = DoctorActive
	d.RejectReason = ""
	return nil
}

// Reject moves a pending doctor to rejected. A non-empty reason is
// mandatory; it is trimmed and stored so the doctor can see why the
// application was declined.
func (d *Doctor) Reject(by Role, reason string) error {
	if by != RoleAdmin {
		return &UnauthorizedTransitionError{Entity: "doctor", To: string(DoctorRejected), Role: by}
	}
	if d.Status != DoctorPending {
		return &InvalidTransitionError{Entity: "doctor", From: string(d.Status), To: string(DoctorRejected)}
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrMissingReason
	}
	d.Status = DoctorRejected
	d.RejectReason = reason
	return nil
}

// Bookable reports whether the doctor may appear in the booking flow's
// doctor list.
func (d *Doctor) Bookable() bool {
	return d.Status == DoctorActive
}

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "pending"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Label returns the display name shown in the apps.
func (s AppointmentStatus) Label() string {
	switch s {
	case StatusPending:
		return "Chờ xác nhận"
	case StatusConfirmed:
		return "Đã xác nhận"
	case StatusCompleted:
		return "Hoàn thành"
	case StatusCancelled:
		return "Đã hủy"
	case StatusRescheduled:
		return "Đã dời lịch"
	}
	return string(s)
}

// Terminal reports whether no further transition is allowed out of the
// status.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// appointmentTransitions maps each allowed (from, to) pair to the roles
// that may trigger it. Anything absent from the table is rejected.
var appointmentTransitions = map[AppointmentStatus]map[AppointmentStatus][]Role{
	StatusPending: {
		StatusConfirmed: {RoleDoctor, RoleAdmin},
		StatusCancelled: {RoleDoctor, RoleAdmin},
	},
	StatusConfirmed: {
		StatusCompleted:   {RoleDoctor},
		StatusCancelled:   {RoleDoctor, RoleAdmin},
		StatusRescheduled: {RoleDoctor, RoleAdmin},
	},
	StatusRescheduled: {
		// Accepting the proposed date moves the appointment back to
		// confirmed; any party may accept.
		StatusConfirmed: {RoleUser, RoleDoctor, RoleAdmin},
	},
}

type Appointment struct {
	gorm.Model
	UserID             uint              `json:"user_id"`
	User               User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DoctorID           uint              `json:"doctor_id"`
	Doctor             Doctor            `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	ClinicID           uint              `json:"clinic_id"`
	Clinic             Clinic            `json:"clinic,omitempty" gorm:"foreignKey:ClinicID"`
	AppointmentDate    time.Time         `json:"appointment_date"`
	Reason             string            `json:"reason"`
	Notes              string            `json:"notes"`
	Status             AppointmentStatus `json:"status" gorm:"type:varchar(16);default:'pending'"`
	PaymentStatus      PaymentStatus     `json:"payment_status" gorm:"type:varchar(8);default:'unpaid'"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = PaymentUnpaid
	}
	return nil
}

// CanTransition reports whether the status change is in the allowed table,
// ignoring role gating.
func (a *Appointment) CanTransition(to AppointmentStatus) bool {
	_, ok := appointmentTransitions[a.Status][to]
	return ok
}

// Transition applies a status change on behalf of the given role. On any
// failure the appointment is left untouched. Moving to cancelled requires a
// non-blank reason, which is trimmed and recorded.
func (a *Appointment) Transition(to AppointmentStatus, by Role, reason string) error {
	roles, ok := appointmentTransitions[a.Status][to]
	if !ok {
		return &InvalidTransitionError{Entity: "appointment", From: string(a.Status), To: string(to)}
	}
	allowed := false
	for _, r := range roles {
		if r == by {
			allowed = true
			break
		}
	}
	if !allowed {
		return &UnauthorizedTransitionError{Entity: "appointment", To: string(to), Role: by}
	}
	if to == StatusCancelled {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return ErrMissingReason
		}
		a.CancellationReason = reason
	}
	a.Status = to
	return nil
}

// Reschedule proposes a new date for a confirmed appointment. The date must
// be set; validity against the doctor's calendar stays server-side.
func (a *Appointment) Reschedule(newDate time.Time, by Role) error {
	if newDate.IsZero() {
		return ErrMissingDate
	}
	if err := a.Transition(StatusRescheduled, by, ""); err != nil {
		return err
	}
	a.AppointmentDate = newDate
	return nil
}

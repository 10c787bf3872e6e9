package models

import (
	"time"
)

type Clinic struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Phone       string      `json:"phone"`
	Description string      `json:"description"`
	IsVerified  bool        `json:"is_verified"`
	Specialties []Specialty `json:"specialties,omitempty" gorm:"many2many:clinic_specialties;"`
	Doctors     []Doctor    `json:"doctors,omitempty" gorm:"foreignKey:ClinicID"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type Specialty struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique"`
	Clinics   []Clinic  `json:"clinics,omitempty" gorm:"many2many:clinic_specialties;"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasSpecialty reports whether the clinic currently offers the specialty.
// The booking flow relies on this to refuse a specialty that is not
// associated with the selected clinic.
func (c *Clinic) HasSpecialty(specialtyID uint) bool {
	for _, s := range c.Specialties {
		if s.ID == specialtyID {
			return true
		}
	}
	return false
}

package models

import (
	"time"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleDoctor Role = "doctor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email" gorm:"unique"`
	Password    string    `json:"password,omitempty"`
	PhoneNumber string    `json:"phone_number"`
	Role        Role      `json:"role" gorm:"type:varchar(16);default:'user'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package models

import "time"

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleCoordinator    Role = "coordinator"
	RoleTeacher        Role = "teacher"
	RoleRepresentative Role = "representative"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleTeacher, RoleRepresentative:
		return true
	}
	return false
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Cédula de identidad, usada como usuario institucional
	Cedula string `gorm:"size:20;uniqueIndex" json:"cedula"`

	Name         string `gorm:"size:120;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:30" json:"phone"`

	Role   Role `gorm:"size:20;default:'representative'" json:"role"`
	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

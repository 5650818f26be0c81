package models

import "time"

// TeacherProfile guarda los parámetros de agenda del docente.
// BlockMinutes define la granularidad de todos los turnos del docente.
type TeacherProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	BlockMinutes         int    `gorm:"default:20;not null" json:"block_minutes"`
	MaxDailyAppointments *int   `json:"max_daily_appointments"`
	Department           string `gorm:"size:120" json:"department"`
	Phone                string `gorm:"size:30" json:"phone"`
	Active               bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

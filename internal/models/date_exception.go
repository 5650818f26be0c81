package models

import "time"

type ExceptionKind string

const (
	ExceptionBlock ExceptionKind = "BLOQUEO" // resta disponibilidad
	ExceptionExtra ExceptionKind = "EXTRA"   // suma disponibilidad fuera de la regla semanal
)

type DateException struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeacherProfileID uint           `gorm:"index:idx_exception_teacher_date;not null" json:"teacher_profile_id"`
	TeacherProfile   TeacherProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date      time.Time     `gorm:"type:date;index:idx_exception_teacher_date;not null" json:"date"`
	StartTime string        `gorm:"size:5;not null" json:"start_time"`
	EndTime   string        `gorm:"size:5;not null" json:"end_time"`
	Kind      ExceptionKind `gorm:"size:10;default:'BLOQUEO'" json:"kind"`
	Reason    string        `gorm:"size:200" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

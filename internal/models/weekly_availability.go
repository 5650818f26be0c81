package models

import "time"

// WeeklyAvailability es una franja recurrente: weekday 0 = lunes ... 6 = domingo.
// Horas en formato "15:04". Franjas solapadas del mismo día se rechazan al
// crear; el resolver las fusiona en lectura.
type WeeklyAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeacherProfileID uint           `gorm:"index:idx_weekly_teacher_day;uniqueIndex:uq_weekly_slot;not null" json:"teacher_profile_id"`
	TeacherProfile   TeacherProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Weekday   int    `gorm:"index:idx_weekly_teacher_day;uniqueIndex:uq_weekly_slot;not null" json:"weekday"`
	StartTime string `gorm:"size:5;uniqueIndex:uq_weekly_slot;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;uniqueIndex:uq_weekly_slot;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Appointment es la cita entre un representante y un docente.
// StartsAt/EndsAt deben alinearse al BlockMinutes del docente.
// Nunca se borra físicamente: cancelar es un cambio de estado con auditoría.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeacherProfileID uint           `gorm:"index:idx_appointment_teacher_start;uniqueIndex:uq_appointment_range;not null" json:"teacher_profile_id"`
	TeacherProfile   TeacherProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"teacher_profile"`

	RepresentativeID uint `gorm:"index;not null" json:"representative_id"`
	Representative   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"representative"`

	// Datos del estudiante denormalizados: no exigen ficha completa
	StudentCourse string `gorm:"size:100;not null" json:"student_course"`
	StudentName   string `gorm:"size:120;not null" json:"student_name"`
	Reason        string `gorm:"type:text" json:"reason"`

	StartsAt time.Time `gorm:"index:idx_appointment_teacher_start;uniqueIndex:uq_appointment_range;not null" json:"starts_at"`
	EndsAt   time.Time `gorm:"uniqueIndex:uq_appointment_range;not null" json:"ends_at"`

	Status string `gorm:"size:12;index;default:'PENDIENTE'" json:"status"`

	// Auditoría de cancelación
	CancelledByID *uint  `json:"cancelled_by_id"`
	CancelledBy   *User  `gorm:"foreignKey:CancelledByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	CancelReason  string `gorm:"size:255" json:"cancel_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

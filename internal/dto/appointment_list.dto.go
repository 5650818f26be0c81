package dto

import (
	"time"

	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	TeacherName   string    `json:"teacher_name"`
	StudentCourse string    `json:"student_course"`
	StudentName   string    `json:"student_name"`
	Reason        string    `json:"reason"`
	CancelReason  string    `json:"cancel_reason,omitempty"`
}

func FromAppointment(ap *models.Appointment, loc *time.Location) AppointmentListDTO {
	local := ap.StartsAt.In(loc)
	return AppointmentListDTO{
		ID:            ap.ID,
		StartsAt:      ap.StartsAt,
		EndsAt:        ap.EndsAt,
		Date:          local.Format("2006-01-02"),
		Time:          local.Format("15:04"),
		Status:        ap.Status,
		TeacherName:   ap.TeacherProfile.User.Name,
		StudentCourse: ap.StudentCourse,
		StudentName:   ap.StudentName,
		Reason:        ap.Reason,
		CancelReason:  ap.CancelReason,
	}
}

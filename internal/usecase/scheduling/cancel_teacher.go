package scheduling

import (
	"context"
	"time"

	"github.com/AndinoServices/turnos-scheduler/internal/audit"
	domain "github.com/AndinoServices/turnos-scheduler/internal/domain/scheduling"
	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
	"github.com/AndinoServices/turnos-scheduler/internal/notify"
)

// CancelByTeacher cancela una cita de la agenda del docente. El perfil del
// docente debe ser el de la cita; no aplica restricción de antelación.
type CancelByTeacher struct {
	repo   domain.Repository
	loc    *time.Location
	outbox *notify.Outbox
	audit  *audit.Dispatcher
}

func NewCancelByTeacher(
	repo domain.Repository,
	loc *time.Location,
	outbox *notify.Outbox,
	auditDisp *audit.Dispatcher,
) *CancelByTeacher {
	return &CancelByTeacher{repo: repo, loc: loc, outbox: outbox, audit: auditDisp}
}

func (uc *CancelByTeacher) Execute(
	ctx context.Context,
	appointmentID uint,
	teacherUserID uint,
	reason string,
) (*models.Appointment, error) {

	var cancelled *models.Appointment

	err := uc.repo.Transact(ctx, func(r domain.Repository) error {
		profile, err := r.GetTeacherProfileByUser(ctx, teacherUserID)
		if err != nil {
			return httperr.ErrBusiness("teacher_mismatch")
		}

		ap, err := r.GetAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}

		if ap.TeacherProfileID != profile.ID {
			return httperr.ErrBusiness("teacher_mismatch")
		}

		if err := domain.Cancel(ap, teacherUserID, reason); err != nil {
			return err
		}
		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		cancelled = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &teacherUserID,
		Action:   "appointment_cancelled_by_teacher",
		Entity:   "appointment",
		EntityID: &cancelled.ID,
	})

	notifyAppointment(
		ctx, uc.repo, uc.outbox, uc.loc, cancelled,
		"Cita cancelada por el docente", "cita_cancelada", nil,
	)

	return cancelled, nil
}

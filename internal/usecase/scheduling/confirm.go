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

// ConfirmByTeacher: PENDIENTE -> CONFIRMADA por el docente dueño.
type ConfirmByTeacher struct {
	repo   domain.Repository
	loc    *time.Location
	outbox *notify.Outbox
	audit  *audit.Dispatcher
}

func NewConfirmByTeacher(
	repo domain.Repository,
	loc *time.Location,
	outbox *notify.Outbox,
	auditDisp *audit.Dispatcher,
) *ConfirmByTeacher {
	return &ConfirmByTeacher{repo: repo, loc: loc, outbox: outbox, audit: auditDisp}
}

func (uc *ConfirmByTeacher) Execute(
	ctx context.Context,
	appointmentID uint,
	teacherUserID uint,
) (*models.Appointment, error) {

	var confirmed *models.Appointment

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

		if err := domain.Confirm(ap); err != nil {
			return err
		}
		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		confirmed = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &teacherUserID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &confirmed.ID,
	})

	notifyAppointment(
		ctx, uc.repo, uc.outbox, uc.loc, confirmed,
		"Cita confirmada", "cita_confirmada", nil,
	)

	return confirmed, nil
}

package scheduling

import (
	"context"
	"time"

	"github.com/AndinoServices/turnos-scheduler/internal/audit"
	domain "github.com/AndinoServices/turnos-scheduler/internal/domain/scheduling"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
	"github.com/AndinoServices/turnos-scheduler/internal/notify"
)

// CancelByAdmin: cancelación administrativa. Rol elevado: sin chequeo de
// pertenencia ni de antelación, pero con la misma máquina de estados.
type CancelByAdmin struct {
	repo   domain.Repository
	loc    *time.Location
	outbox *notify.Outbox
	audit  *audit.Dispatcher
}

func NewCancelByAdmin(
	repo domain.Repository,
	loc *time.Location,
	outbox *notify.Outbox,
	auditDisp *audit.Dispatcher,
) *CancelByAdmin {
	return &CancelByAdmin{repo: repo, loc: loc, outbox: outbox, audit: auditDisp}
}

func (uc *CancelByAdmin) Execute(
	ctx context.Context,
	appointmentID uint,
	adminUserID uint,
	reason string,
) (*models.Appointment, error) {

	var cancelled *models.Appointment

	err := uc.repo.Transact(ctx, func(r domain.Repository) error {
		ap, err := r.GetAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}

		if err := domain.Cancel(ap, adminUserID, reason); err != nil {
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
		UserID:   &adminUserID,
		Action:   "appointment_cancelled_by_admin",
		Entity:   "appointment",
		EntityID: &cancelled.ID,
	})

	notifyAppointment(
		ctx, uc.repo, uc.outbox, uc.loc, cancelled,
		"Cita cancelada por la institución", "cita_cancelada", nil,
	)

	return cancelled, nil
}

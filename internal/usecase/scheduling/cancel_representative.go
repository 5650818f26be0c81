package scheduling

import (
	"context"
	"time"

	"github.com/AndinoServices/turnos-scheduler/internal/audit"
	"github.com/AndinoServices/turnos-scheduler/internal/clock"
	domain "github.com/AndinoServices/turnos-scheduler/internal/domain/scheduling"
	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
	"github.com/AndinoServices/turnos-scheduler/internal/notify"
)

// CancelByRepresentative cancela una cita propia del representante.
// Exige ser el dueño y al menos leadTime de antelación.
type CancelByRepresentative struct {
	repo   domain.Repository
	clock  clock.Clock
	loc    *time.Location
	outbox *notify.Outbox
	audit  *audit.Dispatcher

	leadTime time.Duration
}

func NewCancelByRepresentative(
	repo domain.Repository,
	clk clock.Clock,
	loc *time.Location,
	outbox *notify.Outbox,
	auditDisp *audit.Dispatcher,
	leadTime time.Duration,
) *CancelByRepresentative {
	return &CancelByRepresentative{
		repo:     repo,
		clock:    clk,
		loc:      loc,
		outbox:   outbox,
		audit:    auditDisp,
		leadTime: leadTime,
	}
}

func (uc *CancelByRepresentative) Execute(
	ctx context.Context,
	appointmentID uint,
	userID uint,
	reason string,
) (*models.Appointment, error) {

	var cancelled *models.Appointment

	err := uc.repo.Transact(ctx, func(r domain.Repository) error {
		ap, err := r.GetAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}

		if ap.RepresentativeID != userID {
			return httperr.ErrBusiness("representative_mismatch")
		}

		now := uc.clock.Now().In(uc.loc)
		if now.After(ap.StartsAt.Add(-uc.leadTime)) {
			return httperr.ErrBusiness("lead_time_violation")
		}

		if err := domain.Cancel(ap, userID, reason); err != nil {
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
		UserID:   &userID,
		Action:   "appointment_cancelled_by_representative",
		Entity:   "appointment",
		EntityID: &cancelled.ID,
	})

	notifyAppointment(
		ctx, uc.repo, uc.outbox, uc.loc, cancelled,
		"Cita cancelada por el representante", "cita_cancelada", nil,
	)

	return cancelled, nil
}

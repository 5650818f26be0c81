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

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	TeacherProfileID uint
	RepresentativeID uint

	StudentCourse string
	StudentName   string
	Reason        string

	Start time.Time
}

// ======================================================
// USE CASE
// ======================================================

// BookAppointment crea la cita en una única transacción atómica:
// antelación, re-validación de slot, cupos del representante, cupo diario
// del docente, invariantes de la cita y anti-solape. La notificación y la
// auditoría salen después del commit.
type BookAppointment struct {
	repo   domain.Repository
	clock  clock.Clock
	loc    *time.Location
	outbox *notify.Outbox
	audit  *audit.Dispatcher

	leadTime  time.Duration
	maxDaily  int
	maxWeekly int
}

func NewBookAppointment(
	repo domain.Repository,
	clk clock.Clock,
	loc *time.Location,
	outbox *notify.Outbox,
	auditDisp *audit.Dispatcher,
	leadTime time.Duration,
	maxDaily int,
	maxWeekly int,
) *BookAppointment {
	return &BookAppointment{
		repo:      repo,
		clock:     clk,
		loc:       loc,
		outbox:    outbox,
		audit:     auditDisp,
		leadTime:  leadTime,
		maxDaily:  maxDaily,
		maxWeekly: maxWeekly,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Normalizar inicio: zona institucional, al minuto
	// --------------------------------------------------
	start := in.Start.In(uc.loc).Truncate(time.Minute)
	now := uc.clock.Now().In(uc.loc)

	if start.Before(now.Add(uc.leadTime)) {
		return nil, httperr.ErrBusiness("lead_time_violation")
	}

	var created *models.Appointment

	err := uc.repo.Transact(ctx, func(r domain.Repository) error {

		// --------------------------------------------------
		// Perfil del docente: debe existir y estar activo
		// --------------------------------------------------
		teacher, err := r.GetTeacherProfile(ctx, in.TeacherProfileID)
		if err != nil {
			return httperr.ErrBusiness("teacher_not_found")
		}
		if !teacher.Active {
			return httperr.ErrBusiness("teacher_inactive")
		}

		end := start.Add(time.Duration(teacher.BlockMinutes) * time.Minute)

		// --------------------------------------------------
		// Re-validar el slot dentro de la transacción:
		// cierra la ventana entre ver horarios y reservar
		// --------------------------------------------------
		starts, err := generateSlotStarts(
			ctx, r, uc.clock, uc.loc, uc.leadTime, teacher, dateOf(start, uc.loc),
		)
		if err != nil {
			return err
		}
		if !containsInstant(starts, start) {
			return httperr.ErrBusiness("slot_unavailable")
		}

		// --------------------------------------------------
		// Cupos del representante: 1/día, 2/semana lun-dom
		// --------------------------------------------------
		dayFrom, dayTo := dayRange(start, uc.loc)
		daily, err := r.CountRepresentativeActiveAppointments(ctx, in.RepresentativeID, dayFrom, dayTo)
		if err != nil {
			return err
		}
		if daily >= int64(uc.maxDaily) {
			return httperr.ErrBusiness("daily_quota_exceeded")
		}

		weekFrom, weekTo := weekRange(start, uc.loc)
		weekly, err := r.CountRepresentativeActiveAppointments(ctx, in.RepresentativeID, weekFrom, weekTo)
		if err != nil {
			return err
		}
		if weekly >= int64(uc.maxWeekly) {
			return httperr.ErrBusiness("weekly_quota_exceeded")
		}

		// --------------------------------------------------
		// Cupo diario del docente (si está definido)
		// --------------------------------------------------
		if teacher.MaxDailyAppointments != nil {
			n, err := r.CountTeacherActiveAppointments(ctx, teacher.ID, dayFrom, dayTo)
			if err != nil {
				return err
			}
			if n >= int64(*teacher.MaxDailyAppointments) {
				return httperr.ErrBusiness("teacher_daily_cap_reached")
			}
		}

		// --------------------------------------------------
		// Construir y validar la cita (validación pura)
		// --------------------------------------------------
		ap := &models.Appointment{
			TeacherProfileID: teacher.ID,
			RepresentativeID: in.RepresentativeID,
			StudentCourse:    in.StudentCourse,
			StudentName:      in.StudentName,
			Reason:           in.Reason,
			StartsAt:         start,
			EndsAt:           end,
			Status:           string(domain.InitialStatus()),
		}

		if err := domain.ValidateAppointment(ap, teacher, now, uc.leadTime, uc.loc); err != nil {
			return err
		}

		// --------------------------------------------------
		// Anti-solape + insert; la constraint de la base es
		// el desempate definitivo entre reservas concurrentes
		// --------------------------------------------------
		if err := r.AssertNoOverlap(ctx, teacher.ID, start, end); err != nil {
			return err
		}
		if err := r.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Post-commit: auditoría + notificación (nunca
	// revierten una reserva ya confirmada)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.RepresentativeID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	notifyAppointment(
		ctx, uc.repo, uc.outbox, uc.loc, created,
		"Nueva cita registrada", "cita_creada",
		map[string]string{
			"motivo": created.Reason,
			"estado": created.Status,
		},
	)

	return created, nil
}

func containsInstant(ts []time.Time, t time.Time) bool {
	for _, s := range ts {
		if s.Equal(t) {
			return true
		}
	}
	return false
}

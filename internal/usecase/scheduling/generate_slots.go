package scheduling

import (
	"context"
	"time"

	"github.com/AndinoServices/turnos-scheduler/internal/clock"
	domain "github.com/AndinoServices/turnos-scheduler/internal/domain/scheduling"
	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

// GenerateSlots produce los inicios reservables para un docente y una fecha:
// franjas abiertas − citas activas, alineadas a la grilla del bloque,
// partidas en bloques y filtradas por la antelación mínima. El resultado es
// consultivo: la reserva re-genera dentro de su transacción.
type GenerateSlots struct {
	repo     domain.Repository
	clock    clock.Clock
	loc      *time.Location
	leadTime time.Duration
}

func NewGenerateSlots(
	repo domain.Repository,
	clk clock.Clock,
	loc *time.Location,
	leadTime time.Duration,
) *GenerateSlots {
	return &GenerateSlots{repo: repo, clock: clk, loc: loc, leadTime: leadTime}
}

// Execute busca el perfil y genera los slots; el perfil debe existir y
// estar activo.
func (uc *GenerateSlots) Execute(
	ctx context.Context,
	teacherProfileID uint,
	date time.Time,
) ([]time.Time, *models.TeacherProfile, error) {

	teacher, err := uc.repo.GetTeacherProfile(ctx, teacherProfileID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("teacher_not_found")
	}
	if !teacher.Active {
		return nil, nil, httperr.ErrBusiness("teacher_inactive")
	}

	starts, err := generateSlotStarts(ctx, uc.repo, uc.clock, uc.loc, uc.leadTime, teacher, date)
	if err != nil {
		return nil, nil, err
	}
	return starts, teacher, nil
}

func generateSlotStarts(
	ctx context.Context,
	r domain.Repository,
	clk clock.Clock,
	loc *time.Location,
	leadTime time.Duration,
	teacher *models.TeacherProfile,
	date time.Time,
) ([]time.Time, error) {

	// guardia defensiva
	if date.IsZero() {
		return nil, nil
	}

	open, err := resolveOpenIntervals(ctx, r, loc, teacher, date)
	if err != nil {
		return nil, err
	}

	// quitar citas PENDIENTE/CONFIRMADA del día
	dayFrom, dayTo := dayRange(date, loc)
	apps, err := r.ListTeacherAppointmentsBetween(
		ctx, teacher.ID, dayFrom, dayTo, domain.ActiveStatuses(),
	)
	if err != nil {
		return nil, err
	}

	var taken []domain.Interval
	for _, ap := range apps {
		taken = append(taken, domain.Interval{Start: ap.StartsAt, End: ap.EndsAt})
	}
	free := domain.Subtract(open, domain.Merge(taken))

	// alinear a la grilla del docente y partir en bloques
	aligned := domain.AlignUp(free, teacher.BlockMinutes, loc)
	starts := domain.SplitIntoBlocks(aligned, teacher.BlockMinutes)

	// antelación mínima, aplicada ya en el listado para que lo que se
	// muestra sea siempre reservable
	minStart := clk.Now().In(loc).Add(leadTime)
	out := starts[:0]
	for _, s := range starts {
		if !s.Before(minStart) {
			out = append(out, s)
		}
	}
	return out, nil
}

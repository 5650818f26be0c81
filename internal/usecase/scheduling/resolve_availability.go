package scheduling

import (
	"context"
	"time"

	domain "github.com/AndinoServices/turnos-scheduler/internal/domain/scheduling"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

// ResolveAvailability compone, para un docente y una fecha, las franjas
// abiertas a reserva: disponibilidad semanal + excepciones EXTRA − BLOQUEO.
// Lectura point-in-time, sin caché; las citas existentes no se consideran
// aquí (eso es del generador de slots).
type ResolveAvailability struct {
	repo domain.Repository
	loc  *time.Location
}

func NewResolveAvailability(repo domain.Repository, loc *time.Location) *ResolveAvailability {
	return &ResolveAvailability{repo: repo, loc: loc}
}

func (uc *ResolveAvailability) Execute(
	ctx context.Context,
	teacher *models.TeacherProfile,
	date time.Time,
) ([]domain.Interval, error) {
	return resolveOpenIntervals(ctx, uc.repo, uc.loc, teacher, date)
}

func resolveOpenIntervals(
	ctx context.Context,
	r domain.Repository,
	loc *time.Location,
	teacher *models.TeacherProfile,
	date time.Time,
) ([]domain.Interval, error) {

	day := dateOf(date, loc)

	// 1) base: franjas semanales del día
	weekly, err := r.ListWeeklyAvailability(ctx, teacher.ID, weekdayMonday0(day))
	if err != nil {
		return nil, err
	}

	var base []domain.Interval
	for _, w := range weekly {
		s, okS := combine(day, w.StartTime, loc)
		e, okE := combine(day, w.EndTime, loc)
		if okS && okE && e.After(s) {
			base = append(base, domain.Interval{Start: s, End: e})
		}
	}
	base = domain.Merge(base)

	// 2) EXTRAS suman
	extras, err := r.ListDateExceptions(ctx, teacher.ID, day, models.ExceptionExtra)
	if err != nil {
		return nil, err
	}
	union := base
	for _, ex := range extras {
		s, okS := combine(day, ex.StartTime, loc)
		e, okE := combine(day, ex.EndTime, loc)
		if okS && okE && e.After(s) {
			union = append(union, domain.Interval{Start: s, End: e})
		}
	}
	union = domain.Merge(union)

	// 3) BLOQUEOS restan
	blocks, err := r.ListDateExceptions(ctx, teacher.ID, day, models.ExceptionBlock)
	if err != nil {
		return nil, err
	}
	var blocked []domain.Interval
	for _, bl := range blocks {
		s, okS := combine(day, bl.StartTime, loc)
		e, okE := combine(day, bl.EndTime, loc)
		if okS && okE && e.After(s) {
			blocked = append(blocked, domain.Interval{Start: s, End: e})
		}
	}

	return domain.Subtract(union, domain.Merge(blocked)), nil
}

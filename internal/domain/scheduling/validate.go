package scheduling

import (
	"fmt"
	"time"

	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

// ValidateAppointment re-valida las invariantes de la cita justo antes de
// persistir. Es una función pura: cada transacción la invoca explícitamente,
// no hay hooks implícitos de guardado.
//
// Invariantes:
//   - fin > inicio
//   - duración == BlockMinutes del docente
//   - inicio alineado a la grilla (minutos desde medianoche múltiplo del
//     bloque, segundos en cero)
//   - inicio no está en el pasado
//   - antelación mínima leadTime
func ValidateAppointment(
	ap *models.Appointment,
	teacher *models.TeacherProfile,
	now time.Time,
	leadTime time.Duration,
	loc *time.Location,
) error {

	if !ap.EndsAt.After(ap.StartsAt) {
		return httperr.ErrBusinessMsg("validation_failed", "La hora fin debe ser mayor que la hora inicio.")
	}

	if teacher.BlockMinutes <= 0 {
		return httperr.ErrBusinessMsg("validation_failed", "El docente no tiene un tamaño de bloque válido.")
	}

	dur := int(ap.EndsAt.Sub(ap.StartsAt) / time.Minute)
	if dur != teacher.BlockMinutes {
		return httperr.ErrBusinessMsg("validation_failed",
			fmt.Sprintf("La duración de la cita debe ser exactamente %d minutos.", teacher.BlockMinutes))
	}

	s := ap.StartsAt.In(loc)
	mins := s.Hour()*60 + s.Minute()
	if mins%teacher.BlockMinutes != 0 || s.Second() != 0 || s.Nanosecond() != 0 {
		return httperr.ErrBusinessMsg("validation_failed", "La hora de inicio no coincide con el bloque del docente.")
	}

	if ap.StartsAt.Before(now) {
		return httperr.ErrBusinessMsg("validation_failed", "No se permiten citas en el pasado.")
	}

	if ap.StartsAt.Before(now.Add(leadTime)) {
		return httperr.ErrBusiness("lead_time_violation")
	}

	return nil
}

package scheduling

import (
	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel marca la cita como cancelada y registra quién y por qué.
// El motivo se trunca a 255 caracteres.
func Cancel(ap *models.Appointment, byUserID uint, reason string) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledByID = &byUserID
	ap.CancelReason = truncate(reason, 255)
	return nil
}

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

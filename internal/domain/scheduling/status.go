package scheduling

import "github.com/AndinoServices/turnos-scheduler/internal/httperr"

// ===============================
// Estados de la cita
// ===============================

type Status string

const (
	StatusPending   Status = "PENDIENTE"
	StatusConfirmed Status = "CONFIRMADA"
	StatusCancelled Status = "CANCELADA" // terminal
)

// Active indica si la cita ocupa su franja (cuenta para solapes y cupos).
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transiciones
// ===============================

// CanCancel: PENDIENTE|CONFIRMADA -> CANCELADA
func CanCancel(current Status) error {
	if !current.Active() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanConfirm: PENDIENTE -> CONFIRMADA
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

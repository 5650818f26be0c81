package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	scheduling "github.com/AndinoServices/turnos-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type SlotsHandler struct {
	slots *scheduling.GenerateSlots
	loc   *time.Location
}

func NewSlotsHandler(slots *scheduling.GenerateSlots, loc *time.Location) *SlotsHandler {
	return &SlotsHandler{slots: slots, loc: loc}
}

type slotDTO struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Time     string    `json:"time"`
}

// GET /teachers/:id/slots?date=2006-01-02
// Lista consultiva: todo lo devuelto es reservable en este instante, pero
// la reserva vuelve a validar dentro de su transacción.
func (h *SlotsHandler) ListByDate(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_teacher_id", "Identificador de docente inválido.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "La fecha es obligatoria.")
		return
	}
	date, err := parseDateIn(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, use AAAA-MM-DD.")
		return
	}

	starts, teacher, err := h.slots.Execute(c.Request.Context(), uint(teacherID), date)
	if err != nil {
		if httperr.Business(c, err) {
			return
		}
		httperr.Internal(c, "slots_failed", "Error al generar horarios.")
		return
	}

	block := time.Duration(teacher.BlockMinutes) * time.Minute
	slots := make([]slotDTO, 0, len(starts))
	for _, s := range starts {
		slots = append(slots, slotDTO{
			StartsAt: s,
			EndsAt:   s.Add(block),
			Time:     s.In(h.loc).Format("15:04"),
		})
	}

	c.JSON(200, gin.H{
		"teacher_profile_id": teacher.ID,
		"teacher_name":       teacher.User.Name,
		"date":               formatDate(date, h.loc),
		"block_minutes":      teacher.BlockMinutes,
		"slots":              slots,
	})
}

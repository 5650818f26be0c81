package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/httpresp"
	"github.com/AndinoServices/turnos-scheduler/internal/middleware"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
	scheduling "github.com/AndinoServices/turnos-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

// TeacherAgendaHandler es la superficie del docente autenticado: su agenda
// del día y de la semana, confirmar y cancelar citas.
type TeacherAgendaHandler struct {
	db      *gorm.DB
	slots   *scheduling.GenerateSlots
	confirm *scheduling.ConfirmByTeacher
	cancel  *scheduling.CancelByTeacher
	loc     *time.Location
}

func NewTeacherAgendaHandler(
	db *gorm.DB,
	slots *scheduling.GenerateSlots,
	confirm *scheduling.ConfirmByTeacher,
	cancel *scheduling.CancelByTeacher,
	loc *time.Location,
) *TeacherAgendaHandler {
	return &TeacherAgendaHandler{
		db:      db,
		slots:   slots,
		confirm: confirm,
		cancel:  cancel,
		loc:     loc,
	}
}

// ======================================================
// AGENDA DEL DÍA
// ======================================================

// GET /teacher/agenda?date=2006-01-02
// Citas activas del día + huecos aún reservables.
func (h *TeacherAgendaHandler) Day(c *gin.Context) {
	profile, ok := teacherProfileFromContext(c, h.db)
	if !ok {
		return
	}

	dateStr := c.DefaultQuery("date", time.Now().In(h.loc).Format("2006-01-02"))
	date, err := parseDateIn(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, use AAAA-MM-DD.")
		return
	}

	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	var aps []models.Appointment
	if err := h.db.
		Preload("Representative").
		Where(
			"teacher_profile_id = ? AND starts_at >= ? AND starts_at < ?",
			profile.ID, dayStart, dayEnd,
		).
		Order("starts_at ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_agenda", "Error al consultar la agenda.")
		return
	}

	starts, _, err := h.slots.Execute(c.Request.Context(), profile.ID, date)
	if err != nil {
		if httperr.Business(c, err) {
			return
		}
		httperr.Internal(c, "slots_failed", "Error al generar horarios.")
		return
	}

	free := make([]string, 0, len(starts))
	for _, s := range starts {
		free = append(free, s.In(h.loc).Format("15:04"))
	}

	c.JSON(200, gin.H{
		"date":          formatDate(date, h.loc),
		"block_minutes": profile.BlockMinutes,
		"appointments":  aps,
		"free_slots":    free,
	})
}

// ======================================================
// AGENDA DE LA SEMANA
// ======================================================

// GET /teacher/agenda/week?date=2006-01-02
// Semana lunes-domingo que contiene la fecha dada.
func (h *TeacherAgendaHandler) Week(c *gin.Context) {
	profile, ok := teacherProfileFromContext(c, h.db)
	if !ok {
		return
	}

	dateStr := c.DefaultQuery("date", time.Now().In(h.loc).Format("2006-01-02"))
	date, err := parseDateIn(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, use AAAA-MM-DD.")
		return
	}

	monday := date.AddDate(0, 0, -((int(date.Weekday()) + 6) % 7))
	nextMonday := monday.AddDate(0, 0, 7)

	var aps []models.Appointment
	if err := h.db.
		Preload("Representative").
		Where(
			"teacher_profile_id = ? AND starts_at >= ? AND starts_at < ?",
			profile.ID, monday, nextMonday,
		).
		Order("starts_at ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_agenda", "Error al consultar la agenda.")
		return
	}

	// agrupado por día para que el front pinte la grilla directo
	byDay := make(map[string][]models.Appointment, 7)
	for d := 0; d < 7; d++ {
		byDay[monday.AddDate(0, 0, d).Format("2006-01-02")] = []models.Appointment{}
	}
	for _, ap := range aps {
		key := ap.StartsAt.In(h.loc).Format("2006-01-02")
		byDay[key] = append(byDay[key], ap)
	}

	c.JSON(200, gin.H{
		"week_from": formatDate(monday, h.loc),
		"week_to":   formatDate(nextMonday.AddDate(0, 0, -1), h.loc),
		"days":      byDay,
	})
}

// ======================================================
// CONFIRMAR / CANCELAR
// ======================================================

func (h *TeacherAgendaHandler) Confirm(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Identificador inválido.")
		return
	}

	confirmed, err := h.confirm.Execute(c.Request.Context(), uint(id), userID)
	if err != nil {
		if httperr.Business(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_confirm_appointment", "Error al confirmar la cita.")
		return
	}

	httpresp.OK(c, confirmed)
}

func (h *TeacherAgendaHandler) Cancel(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Identificador inválido.")
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	cancelled, err := h.cancel.Execute(c.Request.Context(), uint(id), userID, req.Reason)
	if err != nil {
		if httperr.Business(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_cancel_appointment", "Error al cancelar la cita.")
		return
	}

	httpresp.OK(c, cancelled)
}

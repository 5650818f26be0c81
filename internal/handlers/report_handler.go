package handlers

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// ReportHandler es la vista de coordinación: totales por estado, citas del
// día y de la semana, y exportación CSV para los informes institucionales.
type ReportHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewReportHandler(db *gorm.DB, loc *time.Location) *ReportHandler {
	return &ReportHandler{db: db, loc: loc}
}

// --------------------------------------------------
// filtros comunes: ?teacher_id= &department= &from= &to=
// --------------------------------------------------

func (h *ReportHandler) filteredQuery(c *gin.Context, from, to time.Time) *gorm.DB {
	q := h.db.
		Model(&models.Appointment{}).
		Joins("JOIN teacher_profiles ON teacher_profiles.id = appointments.teacher_profile_id").
		Where("appointments.starts_at >= ? AND appointments.starts_at < ?", from, to)

	if teacherStr := c.Query("teacher_id"); teacherStr != "" {
		if teacherID, err := strconv.ParseUint(teacherStr, 10, 64); err == nil {
			q = q.Where("appointments.teacher_profile_id = ?", teacherID)
		}
	}
	if dept := c.Query("department"); dept != "" {
		q = q.Where("teacher_profiles.department = ?", dept)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("appointments.status = ?", status)
	}

	return q
}

func (h *ReportHandler) rangeFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	today := time.Now().In(h.loc)
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, h.loc)

	from := midnight
	to := midnight.AddDate(0, 0, 1)

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := parseDateIn(h.loc, fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inicial inválida, use AAAA-MM-DD.")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := parseDateIn(h.loc, toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha final inválida, use AAAA-MM-DD.")
			return time.Time{}, time.Time{}, false
		}
		// rango inclusivo en fechas => exclusivo al día siguiente
		to = parsed.AddDate(0, 0, 1)
	}

	if !to.After(from) {
		httperr.BadRequest(c, "invalid_date_range", "La fecha final debe ser igual o posterior a la inicial.")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// ======================================================
// RESUMEN (totales por estado)
// ======================================================

// GET /reports/summary?from=&to=&teacher_id=&department=
func (h *ReportHandler) Summary(c *gin.Context) {
	from, to, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}

	type statusCount struct {
		Status string `json:"status"`
		Total  int64  `json:"total"`
	}

	var counts []statusCount
	if err := h.filteredQuery(c, from, to).
		Select("appointments.status AS status, COUNT(*) AS total").
		Group("appointments.status").
		Scan(&counts).Error; err != nil {

		httperr.Internal(c, "failed_to_build_summary", "Error al generar el resumen.")
		return
	}

	totals := gin.H{
		"PENDIENTE":  int64(0),
		"CONFIRMADA": int64(0),
		"CANCELADA":  int64(0),
	}
	var grand int64
	for _, sc := range counts {
		totals[sc.Status] = sc.Total
		grand += sc.Total
	}

	c.JSON(200, gin.H{
		"from":      formatDate(from, h.loc),
		"to":        formatDate(to.AddDate(0, 0, -1), h.loc),
		"total":     grand,
		"by_status": totals,
	})
}

// ======================================================
// DÍA / SEMANA
// ======================================================

// GET /reports/today
func (h *ReportHandler) Today(c *gin.Context) {
	now := time.Now().In(h.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	to := from.AddDate(0, 0, 1)

	h.listRange(c, from, to)
}

// GET /reports/week
func (h *ReportHandler) Week(c *gin.Context) {
	now := time.Now().In(h.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	monday := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))

	h.listRange(c, monday, monday.AddDate(0, 0, 7))
}

func (h *ReportHandler) listRange(c *gin.Context, from, to time.Time) {
	var aps []models.Appointment
	if err := h.filteredQuery(c, from, to).
		Preload("TeacherProfile.User").
		Preload("Representative").
		Order("appointments.starts_at ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_report", "Error al consultar las citas.")
		return
	}

	c.JSON(200, gin.H{
		"from":         formatDate(from, h.loc),
		"to":           formatDate(to.AddDate(0, 0, -1), h.loc),
		"total":        len(aps),
		"appointments": aps,
	})
}

// ======================================================
// EXPORT CSV
// ======================================================

// GET /reports/export?from=&to=&teacher_id=&department=&status=
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	from, to, ok := h.rangeFromQuery(c)
	if !ok {
		return
	}

	var aps []models.Appointment
	if err := h.filteredQuery(c, from, to).
		Preload("TeacherProfile.User").
		Preload("Representative").
		Order("appointments.starts_at ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_export_report", "Error al exportar las citas.")
		return
	}

	filename := fmt.Sprintf(
		"citas_%s_%s.csv",
		formatDate(from, h.loc),
		formatDate(to.AddDate(0, 0, -1), h.loc),
	)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	_ = w.Write([]string{
		"id", "fecha", "hora", "docente", "departamento",
		"representante", "estudiante", "curso", "estado", "motivo",
	})

	for _, ap := range aps {
		local := ap.StartsAt.In(h.loc)
		_ = w.Write([]string{
			strconv.FormatUint(uint64(ap.ID), 10),
			local.Format("2006-01-02"),
			local.Format("15:04"),
			ap.TeacherProfile.User.Name,
			ap.TeacherProfile.Department,
			ap.Representative.Name,
			ap.StudentName,
			ap.StudentCourse,
			ap.Status,
			ap.Reason,
		})
	}
}

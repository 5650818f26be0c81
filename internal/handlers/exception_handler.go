package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/httpresp"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// ExceptionHandler administra las excepciones puntuales del docente:
// BLOQUEO resta disponibilidad de un día concreto, EXTRA la amplía.
type ExceptionHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewExceptionHandler(db *gorm.DB, loc *time.Location) *ExceptionHandler {
	return &ExceptionHandler{db: db, loc: loc}
}

type DateExceptionRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
	Reason    string `json:"reason"`
}

// ======================================================
// LIST
// ======================================================

// GET /teacher/exceptions?from=2006-01-02&to=2006-01-02&kind=BLOQUEO
func (h *ExceptionHandler) List(c *gin.Context) {
	profile, ok := teacherProfileFromContext(c, h.db)
	if !ok {
		return
	}

	q := h.db.
		Where("teacher_profile_id = ?", profile.ID)

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := parseDateIn(h.loc, fromStr); err == nil {
			q = q.Where("date >= ?", from)
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := parseDateIn(h.loc, toStr); err == nil {
			q = q.Where("date <= ?", to)
		}
	}
	if kind := c.Query("kind"); kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var exceptions []models.DateException
	if err := q.
		Order("date ASC, start_time ASC").
		Find(&exceptions).Error; err != nil {

		httperr.Internal(c, "failed_to_list_exceptions", "Error al listar excepciones.")
		return
	}

	httpresp.List(c, exceptions)
}

// ======================================================
// CREATE
// ======================================================

func (h *ExceptionHandler) Create(c *gin.Context) {
	profile, ok := teacherProfileFromContext(c, h.db)
	if !ok {
		return
	}

	var req DateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	kind := models.ExceptionKind(req.Kind)
	if kind != models.ExceptionBlock && kind != models.ExceptionExtra {
		httperr.BadRequest(c, "invalid_kind", "El tipo debe ser BLOQUEO o EXTRA.")
		return
	}

	date, err := parseDateIn(h.loc, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, use AAAA-MM-DD.")
		return
	}

	if !isValidHM(req.StartTime) || !isValidHM(req.EndTime) {
		httperr.BadRequest(c, "invalid_time", "Horas inválidas, use HH:MM.")
		return
	}
	if req.EndTime <= req.StartTime {
		httperr.BadRequest(c, "invalid_time_range", "La hora final debe ser mayor a la inicial.")
		return
	}

	ex := models.DateException{
		TeacherProfileID: profile.ID,
		Date:             date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Kind:             kind,
		Reason:           req.Reason,
	}

	if err := h.db.Create(&ex).Error; err != nil {
		httperr.Internal(c, "failed_to_create_exception", "Error al crear la excepción.")
		return
	}

	httpresp.Created(c, ex)
}

// ======================================================
// DELETE
// ======================================================

func (h *ExceptionHandler) Delete(c *gin.Context) {
	profile, ok := teacherProfileFromContext(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_exception_id", "Identificador inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND teacher_profile_id = ?", id, profile.ID).
		Delete(&models.DateException{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_exception", "Error al eliminar la excepción.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "exception_not_found", "Excepción no encontrada.")
		return
	}

	c.JSON(200, gin.H{"status": "ok"})
}

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

// AvailabilityHandler administra la disponibilidad semanal del docente
// autenticado. Franjas solapadas del mismo día se rechazan al escribir.
type AvailabilityHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAvailabilityHandler(db *gorm.DB, loc *time.Location) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, loc: loc}
}

type WeeklySlotRequest struct {
	Weekday   *int   `json:"weekday" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *AvailabilityHandler) List(c *gin.Context) {
	profile, ok := teacherProfileFromContext(c, h.db)
	if !ok {
		return
	}

	var slots []models.WeeklyAvailability
	if err := h.db.
		Where("teacher_profile_id = ?", profile.ID).
		Order("weekday ASC, start_time ASC").
		Find(&slots).Error; err != nil {

		httperr.Internal(c, "failed_to_list_availability", "Error al listar disponibilidad.")
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// CREATE
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	profile, ok := teacherProfileFromContext(c, h.db)
	if !ok {
		return
	}

	var req WeeklySlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !isValidHM(req.StartTime) || !isValidHM(req.EndTime) {
		httperr.BadRequest(c, "invalid_time", "Horas inválidas, use HH:MM.")
		return
	}
	// "HH:MM" con cero a la izquierda ordena lexicográficamente
	if req.EndTime <= req.StartTime {
		httperr.BadRequest(c, "invalid_time_range", "La hora final debe ser mayor a la inicial.")
		return
	}

	var overlapping int64
	h.db.Model(&models.WeeklyAvailability{}).
		Where(
			"teacher_profile_id = ? AND weekday = ? AND start_time < ? AND end_time > ?",
			profile.ID, *req.Weekday, req.EndTime, req.StartTime,
		).
		Count(&overlapping)
	if overlapping > 0 {
		httperr.BadRequest(c, "availability_overlap", "La franja se solapa con otra existente.")
		return
	}

	slot := models.WeeklyAvailability{
		TeacherProfileID: profile.ID,
		Weekday:          *req.Weekday,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
	}

	if err := h.db.Create(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_create_availability", "Error al crear la franja.")
		return
	}

	httpresp.Created(c, slot)
}

// ======================================================
// DELETE
// ======================================================

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	profile, ok := teacherProfileFromContext(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_id", "Identificador inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND teacher_profile_id = ?", id, profile.ID).
		Delete(&models.WeeklyAvailability{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_availability", "Error al eliminar la franja.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "availability_not_found", "Franja no encontrada.")
		return
	}

	c.JSON(200, gin.H{"status": "ok"})
}

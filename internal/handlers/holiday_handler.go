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

// HolidayHandler aplica bloqueos institucionales masivos: registra el
// feriado y materializa un BLOQUEO por docente y por día. El resolver de
// disponibilidad solo mira las excepciones generadas.
type HolidayHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewHolidayHandler(db *gorm.DB, loc *time.Location) *HolidayHandler {
	return &HolidayHandler{db: db, loc: loc}
}

type CreateHolidayRequest struct {
	Name     string `json:"name" binding:"required"`
	DateFrom string `json:"date_from" binding:"required"`
	DateTo   string `json:"date_to" binding:"required"`

	// Vacíos => día completo (00:00 a 23:59)
	TimeFrom string `json:"time_from"`
	TimeTo   string `json:"time_to"`

	// Limita el bloqueo a un departamento; vacío => todos los docentes
	Department string `json:"department"`

	// true => reemplaza bloqueos previos generados por el mismo nombre
	Replace bool `json:"replace"`
}

// holidayWindow completa el extremo horario faltante: vacío => día
// completo por ese lado (00:00 / 23:59).
func holidayWindow(from, to string) (string, string) {
	if from == "" {
		from = "00:00"
	}
	if to == "" {
		to = "23:59"
	}
	return from, to
}

// ======================================================
// CREATE (bloqueo masivo)
// ======================================================

func (h *HolidayHandler) Create(c *gin.Context) {
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	from, err := parseDateIn(h.loc, req.DateFrom)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inicial inválida, use AAAA-MM-DD.")
		return
	}
	to, err := parseDateIn(h.loc, req.DateTo)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha final inválida, use AAAA-MM-DD.")
		return
	}
	if to.Before(from) {
		httperr.BadRequest(c, "invalid_date_range", "La fecha final debe ser igual o posterior a la inicial.")
		return
	}

	timeFrom, timeTo := holidayWindow(req.TimeFrom, req.TimeTo)
	if !isValidHM(timeFrom) || !isValidHM(timeTo) || timeTo <= timeFrom {
		httperr.BadRequest(c, "invalid_time_range", "Rango horario inválido.")
		return
	}

	var holiday models.InstitutionalHoliday
	var blocked int

	err = h.db.Transaction(func(tx *gorm.DB) error {

		holiday = models.InstitutionalHoliday{
			Name:     req.Name,
			DateFrom: from,
			DateTo:   to,
			TimeFrom: req.TimeFrom,
			TimeTo:   req.TimeTo,
		}
		if err := tx.Create(&holiday).Error; err != nil {
			return err
		}

		q := tx.Model(&models.TeacherProfile{}).Where("active = ?", true)
		if req.Department != "" {
			q = q.Where("department = ?", req.Department)
		}

		var teacherIDs []uint
		if err := q.Pluck("id", &teacherIDs).Error; err != nil {
			return err
		}

		if req.Replace {
			if err := tx.
				Where(
					"reason = ? AND kind = ? AND date >= ? AND date <= ?",
					req.Name, models.ExceptionBlock, from, to,
				).
				Delete(&models.DateException{}).Error; err != nil {
				return err
			}
		}

		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			for _, teacherID := range teacherIDs {

				// idempotente: no duplica un bloqueo idéntico
				var exists int64
				if err := tx.Model(&models.DateException{}).
					Where(
						"teacher_profile_id = ? AND date = ? AND start_time = ? AND end_time = ? AND kind = ?",
						teacherID, day, timeFrom, timeTo, models.ExceptionBlock,
					).
					Count(&exists).Error; err != nil {
					return err
				}
				if exists > 0 {
					continue
				}

				ex := models.DateException{
					TeacherProfileID: teacherID,
					Date:             day,
					StartTime:        timeFrom,
					EndTime:          timeTo,
					Kind:             models.ExceptionBlock,
					Reason:           req.Name,
				}
				if err := tx.Create(&ex).Error; err != nil {
					return err
				}
				blocked++
			}
		}

		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_holiday", "Error al aplicar el bloqueo institucional.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"holiday":          holiday,
		"blocks_generated": blocked,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *HolidayHandler) List(c *gin.Context) {
	var holidays []models.InstitutionalHoliday
	if err := h.db.
		Order("date_from DESC").
		Find(&holidays).Error; err != nil {

		httperr.Internal(c, "failed_to_list_holidays", "Error al listar feriados.")
		return
	}

	httpresp.List(c, holidays)
}

// ======================================================
// DELETE (retira el feriado y sus bloqueos generados)
// ======================================================

func (h *HolidayHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_holiday_id", "Identificador inválido.")
		return
	}

	var holiday models.InstitutionalHoliday
	if err := h.db.First(&holiday, id).Error; err != nil {
		httperr.NotFound(c, "holiday_not_found", "Feriado no encontrado.")
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(
				"reason = ? AND kind = ? AND date >= ? AND date <= ?",
				holiday.Name, models.ExceptionBlock, holiday.DateFrom, holiday.DateTo,
			).
			Delete(&models.DateException{}).Error; err != nil {
			return err
		}
		return tx.Delete(&holiday).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_holiday", "Error al retirar el feriado.")
		return
	}

	c.JSON(200, gin.H{"status": "ok"})
}

package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndinoServices/turnos-scheduler/internal/dto"
	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/httpresp"
	"github.com/AndinoServices/turnos-scheduler/internal/middleware"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
	scheduling "github.com/AndinoServices/turnos-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler cubre la superficie del representante: reservar,
// listar sus citas y cancelar. La escritura pasa siempre por los casos de
// uso transaccionales; la lectura consulta directo.
type AppointmentHandler struct {
	db     *gorm.DB
	book   *scheduling.BookAppointment
	cancel *scheduling.CancelByRepresentative
	loc    *time.Location
}

func NewAppointmentHandler(
	db *gorm.DB,
	book *scheduling.BookAppointment,
	cancel *scheduling.CancelByRepresentative,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{db: db, book: book, cancel: cancel, loc: loc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	TeacherProfileID uint   `json:"teacher_profile_id" binding:"required"`
	Date             string `json:"date" binding:"required"`
	Time             string `json:"time" binding:"required"`
	StudentCourse    string `json:"student_course" binding:"required"`
	StudentName      string `json:"student_name" binding:"required"`
	Reason           string `json:"reason"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if !isValidHM(req.Time) {
		httperr.BadRequest(c, "invalid_time", "Hora inválida, use HH:MM.")
		return
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
		return
	}

	created, err := h.book.Execute(c.Request.Context(), scheduling.BookInput{
		TeacherProfileID: req.TeacherProfileID,
		RepresentativeID: userID,
		StudentCourse:    req.StudentCourse,
		StudentName:      req.StudentName,
		Reason:           req.Reason,
		Start:            start,
	})
	if err != nil {
		if httperr.Business(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Error al registrar la cita.")
		return
	}

	httpresp.Created(c, created)
}

// ======================================================
// LIST MINE
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	q := h.db.
		Preload("TeacherProfile.User").
		Where("representative_id = ?", userID)

	// ?status=PENDIENTE|CONFIRMADA|CANCELADA filtra; vacío trae todas
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	// ?upcoming=true limita a citas futuras
	if c.Query("upcoming") == "true" {
		q = q.Where("starts_at >= ?", time.Now().In(h.loc))
	}

	var aps []models.Appointment
	if err := q.Order("starts_at ASC").Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.FromAppointment(&ap, h.loc))
	}

	httpresp.List(c, out)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
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

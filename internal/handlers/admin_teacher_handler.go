package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/httpresp"
	"github.com/AndinoServices/turnos-scheduler/internal/middleware"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
	scheduling "github.com/AndinoServices/turnos-scheduler/internal/usecase/scheduling"
	"github.com/AndinoServices/turnos-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// AdminTeacherHandler es el panel institucional: alta de docentes con su
// perfil de agenda, ajustes del perfil y cancelación administrativa.
// El perfil se crea siempre de forma explícita, nunca como efecto lateral
// de un login.
type AdminTeacherHandler struct {
	db     *gorm.DB
	cancel *scheduling.CancelByAdmin
}

func NewAdminTeacherHandler(db *gorm.DB, cancel *scheduling.CancelByAdmin) *AdminTeacherHandler {
	return &AdminTeacherHandler{db: db, cancel: cancel}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTeacherRequest struct {
	Cedula   string `json:"cedula" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	BlockMinutes         int    `json:"block_minutes"`
	MaxDailyAppointments *int   `json:"max_daily_appointments"`
	Department           string `json:"department"`
}

type UpdateTeacherProfileRequest struct {
	BlockMinutes         *int    `json:"block_minutes"`
	MaxDailyAppointments *int    `json:"max_daily_appointments"`
	Department           *string `json:"department"`
	Phone                *string `json:"phone"`
	Active               *bool   `json:"active"`
}

// ======================================================
// CREATE TEACHER (usuario + perfil, una transacción)
// ======================================================

func (h *AdminTeacherHandler) CreateTeacher(c *gin.Context) {
	var req CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "El dominio del correo no parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Error al procesar la contraseña.")
		return
	}

	blockMinutes := req.BlockMinutes
	if blockMinutes <= 0 {
		blockMinutes = 20
	}

	var user models.User
	var profile models.TeacherProfile

	err = h.db.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Cedula:       strings.TrimSpace(req.Cedula),
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        req.Phone,
			Role:         models.RoleTeacher,
			Active:       true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile = models.TeacherProfile{
			UserID:               user.ID,
			BlockMinutes:         blockMinutes,
			MaxDailyAppointments: req.MaxDailyAppointments,
			Department:           req.Department,
			Phone:                req.Phone,
			Active:               true,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		httperr.BadRequest(c, "failed_to_create_teacher", "No se pudo crear el docente; verifique cédula y correo.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    userPayload(&user),
		"profile": profile,
	})
}

// ======================================================
// LIST TEACHERS
// ======================================================

// GET /admin/teachers?department=...&active=true
func (h *AdminTeacherHandler) ListTeachers(c *gin.Context) {
	q := h.db.
		Preload("User").
		Model(&models.TeacherProfile{})

	if dept := c.Query("department"); dept != "" {
		q = q.Where("department = ?", dept)
	}
	if active := c.Query("active"); active != "" {
		q = q.Where("active = ?", active == "true")
	}

	var profiles []models.TeacherProfile
	if err := q.Order("id ASC").Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_teachers", "Error al listar docentes.")
		return
	}

	httpresp.List(c, profiles)
}

// ======================================================
// UPDATE PROFILE
// ======================================================

func (h *AdminTeacherHandler) UpdateTeacherProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_teacher_id", "Identificador inválido.")
		return
	}

	var req UpdateTeacherProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var profile models.TeacherProfile
	if err := h.db.Preload("User").First(&profile, id).Error; err != nil {
		httperr.NotFound(c, "teacher_not_found", "Docente no encontrado.")
		return
	}

	if req.BlockMinutes != nil {
		if *req.BlockMinutes <= 0 {
			httperr.BadRequest(c, "invalid_block_minutes", "El bloque debe ser mayor a cero.")
			return
		}
		profile.BlockMinutes = *req.BlockMinutes
	}
	if req.MaxDailyAppointments != nil {
		profile.MaxDailyAppointments = req.MaxDailyAppointments
	}
	if req.Department != nil {
		profile.Department = *req.Department
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Active != nil {
		profile.Active = *req.Active
	}

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_teacher", "Error al actualizar el perfil.")
		return
	}

	httpresp.OK(c, profile)
}

// ======================================================
// CANCEL APPOINTMENT (administrativo)
// ======================================================

func (h *AdminTeacherHandler) CancelAppointment(c *gin.Context) {
	adminID := middleware.CurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Identificador inválido.")
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	cancelled, err := h.cancel.Execute(c.Request.Context(), uint(id), adminID, req.Reason)
	if err != nil {
		if httperr.Business(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_cancel_appointment", "Error al cancelar la cita.")
		return
	}

	httpresp.OK(c, cancelled)
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/middleware"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

// teacherProfileFromContext resuelve el perfil docente del usuario
// autenticado; responde 404 y devuelve false si no existe.
func teacherProfileFromContext(c *gin.Context, db *gorm.DB) (*models.TeacherProfile, bool) {
	userID := middleware.CurrentUserID(c)

	var profile models.TeacherProfile
	if err := db.
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {

		httperr.NotFound(c, "teacher_profile_not_found", "El usuario no tiene perfil de docente.")
		return nil, false
	}
	return &profile, true
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndinoServices/turnos-scheduler/internal/middleware"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	payload := gin.H{"user": userPayload(&user)}

	// el docente recibe también su perfil de agenda
	if user.Role == models.RoleTeacher {
		var profile models.TeacherProfile
		if err := h.db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			payload["teacher_profile"] = profile
		}
	}

	c.JSON(http.StatusOK, payload)
}

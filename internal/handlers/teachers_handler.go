package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndinoServices/turnos-scheduler/internal/httperr"
	"github.com/AndinoServices/turnos-scheduler/internal/httpresp"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

// TeachersHandler lista los docentes activos para que el representante
// elija con quién agendar.
type TeachersHandler struct {
	db *gorm.DB
}

func NewTeachersHandler(db *gorm.DB) *TeachersHandler {
	return &TeachersHandler{db: db}
}

type teacherListDTO struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	BlockMinutes int    `json:"block_minutes"`
}

// GET /teachers?department=...
func (h *TeachersHandler) ListActive(c *gin.Context) {
	q := h.db.
		Preload("User").
		Where("active = ?", true)

	if dept := c.Query("department"); dept != "" {
		q = q.Where("department = ?", dept)
	}

	var profiles []models.TeacherProfile
	if err := q.Order("id ASC").Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_teachers", "Error al listar docentes.")
		return
	}

	out := make([]teacherListDTO, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, teacherListDTO{
			ID:           p.ID,
			Name:         p.User.Name,
			Department:   p.Department,
			BlockMinutes: p.BlockMinutes,
		})
	}

	httpresp.List(c, out)
}

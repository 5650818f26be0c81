package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Business escribe un BusinessError con el mensaje humano que corresponda
// al código; los códigos desconocidos caen en 400 genérico.
func Business(c *gin.Context, err error) bool {
	be, ok := AsBusiness(err)
	if !ok {
		return false
	}

	msg := be.Message
	if msg == "" {
		msg = businessMessages[be.Code]
	}

	switch be.Code {
	case "slot_unavailable":
		Conflict(c, be.Code, msg)
	case "representative_mismatch", "teacher_mismatch":
		Forbidden(c, be.Code, msg)
	case "teacher_not_found", "appointment_not_found":
		NotFound(c, be.Code, msg)
	default:
		BadRequest(c, be.Code, msg)
	}
	return true
}

var businessMessages = map[string]string{
	"validation_failed":         "La cita no cumple las reglas de agenda.",
	"lead_time_violation":       "Se requieren al menos 24 horas de antelación.",
	"slot_unavailable":          "El horario seleccionado ya no está disponible.",
	"daily_quota_exceeded":      "Máximo 1 cita por día.",
	"weekly_quota_exceeded":     "Máximo 2 citas por semana.",
	"teacher_daily_cap_reached": "El docente alcanzó el máximo de citas para ese día.",
	"representative_mismatch":   "No puede cancelar citas de otra persona.",
	"teacher_mismatch":          "No puede operar citas de otro docente.",
	"invalid_state":             "Esta cita no admite esa operación.",
	"teacher_not_found":         "Docente no encontrado.",
	"teacher_inactive":          "El docente no está activo.",
	"appointment_not_found":     "Cita no encontrada.",
	"availability_overlap":      "La franja se solapa con otra existente.",
}

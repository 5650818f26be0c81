package handlers

import (
	"regexp"
	"time"
)

// --------------------------------------------------
// Fechas y horas en la zona institucional
// --------------------------------------------------

func parseDateIn(loc *time.Location, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, loc)
}

var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// valida "HH:MM" en reloj de 24 horas
func isValidHM(s string) bool {
	return hhmmRe.MatchString(s)
}

func formatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

func formatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04")
}

package timezone

import "time"

// Zona horaria institucional: todas las horas del día (franjas semanales,
// excepciones, feriados) se interpretan en esta zona.
const DefaultTimezone = "America/Guayaquil"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

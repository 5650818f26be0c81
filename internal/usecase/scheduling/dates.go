package scheduling

import "time"

// weekday con 0 = lunes ... 6 = domingo (convención de la agenda).
func weekdayMonday0(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// dateOf devuelve la medianoche local del día de t.
func dateOf(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// combine arma el instante absoluto de una hora "15:04" sobre una fecha.
func combine(date time.Time, hm string, loc *time.Location) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), true
}

// dayRange: [00:00 del día, 00:00 del día siguiente)
func dayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	from := dateOf(t, loc)
	return from, from.AddDate(0, 0, 1)
}

// weekRange: semana lunes-domingo que contiene a t, como [lunes, lunes+7d)
func weekRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	day := dateOf(t, loc)
	from := day.AddDate(0, 0, -weekdayMonday0(day))
	return from, from.AddDate(0, 0, 7)
}

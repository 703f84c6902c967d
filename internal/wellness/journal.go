package wellness

import "time"

// Monday-first, matching the ordering the journal reports group by.
var dias = [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// Weekday returns the Spanish day name for t.
func Weekday(t time.Time) string {
	return dias[(int(t.Weekday())+6)%7]
}

// DayPart buckets t into Mañana (hour < 12), Tarde (hour < 18) or Noche.
func DayPart(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Mañana"
	case h < 18:
		return "Tarde"
	default:
		return "Noche"
	}
}

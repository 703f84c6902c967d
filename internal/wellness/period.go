package wellness

import (
	"fmt"
	"time"
)

// WeekKey returns the ISO-week bucket for t, e.g. "2026-S05".
// Check-ins are unique per (email, week key).
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-S%02d", year, week)
}

// MonthKey returns the calendar-month bucket for t, e.g. "2026-01".
// Hexágono and Brújula evaluations are unique per (email, month key).
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// CheckinID derives the check-in row id from email and calendar date.
func CheckinID(email string, t time.Time) string {
	return email + "_" + t.Format("2006-01-02")
}

// PeriodID derives a monthly evaluation id, e.g. "a@x.com_2026-01".
// Because the id is deterministic, the table's primary key doubles as the
// one-evaluation-per-month constraint.
func PeriodID(email, periodo string) string {
	return email + "_" + periodo
}

// JournalID is minute-resolution; the same user may journal several times a
// day but not twice within the same minute.
func JournalID(email string, t time.Time) string {
	return email + "_" + t.Format("2006-01-02_1504")
}

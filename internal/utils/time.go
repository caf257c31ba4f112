package utils

import (
	"strings"
	"sync"
	"time"
)

const (
	layoutDay       = "2006-01-02"
	layoutReportDay = "02-01-2006"
)

var (
	locMu  sync.RWMutex
	appLoc = time.Local
)

// SetLocation fixes the timezone used for all calendar-day math.
// Every "today" and stored trip_date goes through this single location.
func SetLocation(loc *time.Location) {
	if loc == nil {
		return
	}
	locMu.Lock()
	appLoc = loc
	locMu.Unlock()
}

// Location returns the active app timezone.
func Location() *time.Location {
	locMu.RLock()
	defer locMu.RUnlock()
	return appLoc
}

// Today returns the current calendar day, truncated to midnight in the app timezone.
func Today() time.Time {
	return DayOf(time.Now())
}

// DayOf truncates t to its calendar day in the app timezone.
func DayOf(t time.Time) time.Time {
	t = t.In(Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location())
}

// FormatDay formats a day as YYYY-MM-DD for SQL date columns.
func FormatDay(t time.Time) string {
	return DayOf(t).Format(layoutDay)
}

// FormatReportDay formats a day as DD-MM-YYYY for user-facing text.
func FormatReportDay(t time.Time) string {
	return DayOf(t).Format(layoutReportDay)
}

// ParseReportDay parses DD-MM-YYYY in the app timezone.
func ParseReportDay(s string) (time.Time, error) {
	return time.ParseInLocation(layoutReportDay, strings.TrimSpace(s), Location())
}

package services

import (
	"strings"
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
)

const dayLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DaysBetween returns the whole calendar days from "from" to "to", reading each value's
// date in its own location. Clock time and DST offsets never affect the result.
func DaysBetween(from time.Time, to time.Time) int {
	return int(calendarDay(to).Sub(calendarDay(from)).Hours() / 24)
}

func AddDays(value time.Time, days int) time.Time {
	return dateOnly(value).AddDate(0, 0, days)
}

func FormatDay(value time.Time) string {
	return value.Format(dayLayout)
}

func DailyLogHasData(entry models.DailyLog) bool {
	if len(entry.Symptoms) > 0 || len(entry.Moods) > 0 {
		return true
	}
	if strings.TrimSpace(entry.Notes) != "" {
		return true
	}
	return strings.TrimSpace(entry.Flow) != "" && entry.Flow != models.FlowNone
}

func calendarDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

func betweenInclusive(day, start, end time.Time) bool {
	return DaysBetween(start, day) >= 0 && DaysBetween(day, end) >= 0
}

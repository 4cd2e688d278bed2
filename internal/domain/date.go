package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format used for every date key in the system.
const DateLayout = "2006-01-02"

// FormatDate renders a (year, month, day) triple as an ISO date string.
func FormatDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseDate parses an ISO "2006-01-02" date string.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthPrefix returns the "YYYY-MM-" prefix shared by every date key in the
// given month. Used to scope operations (clear, share) to one month.
func MonthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d-", year, int(month))
}

// ClassDates returns the ISO dates of every configured class day in the
// month, in calendar order, excluding cancelled dates. classDays holds
// weekday indices (0=Sunday .. 6=Saturday).
func ClassDates(year int, month time.Month, classDays []int, cancelled map[string]bool) []string {
	isClassDay := make(map[int]bool, len(classDays))
	for _, wd := range classDays {
		isClassDay[wd] = true
	}

	var dates []string
	for day := 1; day <= DaysInMonth(year, month); day++ {
		date := FormatDate(year, month, day)
		wd := int(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday())
		if isClassDay[wd] && !cancelled[date] {
			dates = append(dates, date)
		}
	}
	return dates
}

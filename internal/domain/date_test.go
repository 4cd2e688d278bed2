package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
)

func TestFormatDate_padsToISO(t *testing.T) {
	assert.Equal(t, "2025-01-06", domain.FormatDate(2025, time.January, 6))
	assert.Equal(t, "2025-12-31", domain.FormatDate(2025, time.December, 31))
}

func TestParseDate_rejectsNonISO(t *testing.T) {
	_, err := domain.ParseDate("06/01/2025")
	require.Error(t, err)

	parsed, err := domain.ParseDate("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, parsed.Weekday())
}

func TestDaysInMonth_handlesLeapYears(t *testing.T) {
	assert.Equal(t, 31, domain.DaysInMonth(2025, time.January))
	assert.Equal(t, 28, domain.DaysInMonth(2025, time.February))
	assert.Equal(t, 29, domain.DaysInMonth(2024, time.February))
	assert.Equal(t, 30, domain.DaysInMonth(2025, time.April))
}

// TestClassDates_January2025 pins the expansion of the default
// Monday/Thursday/Saturday pattern over a known month.
func TestClassDates_January2025(t *testing.T) {
	dates := domain.ClassDates(2025, time.January, []int{1, 4, 6}, nil)

	assert.Equal(t, []string{
		"2025-01-02", "2025-01-04", "2025-01-06",
		"2025-01-09", "2025-01-11", "2025-01-13",
		"2025-01-16", "2025-01-18", "2025-01-20",
		"2025-01-23", "2025-01-25", "2025-01-27",
		"2025-01-30",
	}, dates)
}

// TestClassDates_skipsCancelled verifies that cancelled dates disappear from
// the expansion while the rest of the month is unaffected.
func TestClassDates_skipsCancelled(t *testing.T) {
	cancelled := map[string]bool{"2025-01-06": true, "2025-01-30": true}
	dates := domain.ClassDates(2025, time.January, []int{1, 4, 6}, cancelled)

	assert.Len(t, dates, 11)
	assert.NotContains(t, dates, "2025-01-06")
	assert.NotContains(t, dates, "2025-01-30")
}

func TestClassDates_emptyPattern(t *testing.T) {
	assert.Empty(t, domain.ClassDates(2025, time.January, nil, nil))
}

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, Monday, WeekdayOf(date(2024, 9, 2)))
	assert.Equal(t, Sunday, WeekdayOf(date(2024, 9, 8)))
	assert.Equal(t, time.Wednesday, Wednesday.Time())

	w, err := ParseWeekday("FRI")
	require.NoError(t, err)
	assert.Equal(t, Friday, w)

	_, err = ParseWeekday("Friday")
	assert.Error(t, err)
}

func TestHolidayCovers(t *testing.T) {
	oneOff := Holiday{StartDate: date(2024, 10, 10), EndDate: date(2024, 10, 12)}
	assert.True(t, oneOff.Covers(date(2024, 10, 10)))
	assert.True(t, oneOff.Covers(date(2024, 10, 12).Add(15*time.Hour)))
	assert.False(t, oneOff.Covers(date(2024, 10, 13)))
	assert.False(t, oneOff.Covers(date(2025, 10, 11)))

	yearly := Holiday{StartDate: date(2020, 5, 1), EndDate: date(2020, 5, 1), IsRecurring: true}
	assert.True(t, yearly.Covers(date(2031, 5, 1)))
	assert.False(t, yearly.Covers(date(2031, 5, 2)))

	wrapping := Holiday{StartDate: date(2023, 12, 30), EndDate: date(2024, 1, 2), IsRecurring: true}
	assert.True(t, wrapping.Covers(date(2026, 12, 31)))
	assert.True(t, wrapping.Covers(date(2027, 1, 2)))
	assert.False(t, wrapping.Covers(date(2027, 1, 3)))
	assert.False(t, wrapping.Covers(date(2026, 12, 29)))
}

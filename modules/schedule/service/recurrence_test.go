package service

import (
	"testing"
	"time"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func weeklyParent(center uuid.UUID) *entity.ScheduleEntry {
	p := &entity.ScheduleEntry{
		CenterID:          center,
		Subject:           "Chemistry",
		DayOfWeek:         entity.Monday,
		StartTime:         tod("09:00"),
		EndTime:           tod("10:00"),
		IsActive:          true,
		IsRecurring:       true,
		RecurrenceType:    entity.RecurrenceWeekly,
		StartDate:         datePtr("2026-01-01"),
		RecurrenceEndDate: datePtr("2026-01-31"),
	}
	p.ID = uuid.New()
	return p
}

func dates(occ []Occurrence) []string {
	out := make([]string, len(occ))
	for i, o := range occ {
		out[i] = o.Date.Format("2006-01-02")
	}
	return out
}

func TestExpand_Weekly(t *testing.T) {
	parent := weeklyParent(uuid.New())

	occ, err := Expand(parent, nil, nil, date("2026-01-01"), date("2026-02-28"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-05", "2026-01-12", "2026-01-19", "2026-01-26"}, dates(occ))
	for _, o := range occ {
		assert.Equal(t, parent.ID, o.EntryID)
		assert.False(t, o.IsException)
	}
}

func TestExpand_WindowIsClipped(t *testing.T) {
	parent := weeklyParent(uuid.New())

	occ, err := Expand(parent, nil, nil, date("2026-01-13"), date("2026-01-20"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-19"}, dates(occ))
}

func TestExpand_Idempotent(t *testing.T) {
	parent := weeklyParent(uuid.New())
	holidays := []entity.Holiday{{CenterID: parent.CenterID, StartDate: date("2026-01-12"), EndDate: date("2026-01-12")}}

	first, err := Expand(parent, nil, holidays, date("2026-01-01"), date("2026-01-31"))
	require.NoError(t, err)
	second, err := Expand(parent, nil, holidays, date("2026-01-01"), date("2026-01-31"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExpand_HolidaysAndExceptions(t *testing.T) {
	center := uuid.New()
	parent := weeklyParent(center)

	holidays := []entity.Holiday{
		{CenterID: center, Name: "Founders day", StartDate: date("2026-01-12"), EndDate: date("2026-01-12")},
		{CenterID: uuid.New(), Name: "Elsewhere", StartDate: date("2026-01-05"), EndDate: date("2026-01-05")},
	}

	moved := entity.ScheduleEntry{
		CenterID:      center,
		Subject:       "Chemistry lab",
		DayOfWeek:     entity.Monday,
		StartTime:     tod("10:00"),
		EndTime:       tod("11:00"),
		IsActive:      true,
		IsException:   true,
		ParentID:      idPtr(parent.ID),
		ExceptionDate: datePtr("2026-01-19"),
	}
	moved.ID = uuid.New()
	cancelled := entity.ScheduleEntry{
		IsActive:      false,
		IsException:   true,
		ParentID:      idPtr(parent.ID),
		ExceptionDate: datePtr("2026-01-26"),
	}
	onHoliday := entity.ScheduleEntry{
		IsActive:      true,
		IsException:   true,
		ParentID:      idPtr(parent.ID),
		ExceptionDate: datePtr("2026-01-12"),
	}

	occ, err := Expand(parent, []entity.ScheduleEntry{moved, cancelled, onHoliday}, holidays, date("2026-01-01"), date("2026-01-31"))
	require.NoError(t, err)
	require.Equal(t, []string{"2026-01-05", "2026-01-19"}, dates(occ))

	assert.False(t, occ[0].IsException)
	assert.True(t, occ[1].IsException)
	assert.Equal(t, moved.ID, occ[1].EntryID)
	assert.Equal(t, parent.ID, occ[1].ParentID)
	assert.Equal(t, "10:00", occ[1].StartTime.String())
	assert.Equal(t, "Chemistry lab", occ[1].Subject)
}

func TestExpand_RecurringHolidayWrapsNewYear(t *testing.T) {
	center := uuid.New()
	parent := weeklyParent(center)
	parent.StartDate = datePtr("2025-12-01")

	holidays := []entity.Holiday{{
		CenterID:    center,
		StartDate:   date("2019-12-24"),
		EndDate:     date("2020-01-06"),
		IsRecurring: true,
	}}

	occ, err := Expand(parent, nil, holidays, date("2025-12-15"), date("2026-01-15"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-15", "2025-12-22", "2026-01-12"}, dates(occ))
}

func TestExpand_Monthly(t *testing.T) {
	parent := weeklyParent(uuid.New())
	parent.RecurrenceType = entity.RecurrenceMonthly
	parent.StartDate = datePtr("2026-01-31")
	parent.RecurrenceEndDate = datePtr("2026-06-30")

	occ, err := Expand(parent, nil, nil, date("2026-01-01"), date("2026-12-31"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-31", "2026-03-31", "2026-05-31"}, dates(occ))
}

func TestExpand_Daily(t *testing.T) {
	parent := weeklyParent(uuid.New())
	parent.RecurrenceType = entity.RecurrenceDaily
	parent.StartDate = datePtr("2026-01-05")
	parent.RecurrenceEndDate = datePtr("2026-01-07")

	occ, err := Expand(parent, nil, nil, date("2026-01-01"), date("2026-01-31"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-05", "2026-01-06", "2026-01-07"}, dates(occ))
}

func TestExpand_AnchorFallsBackToCreation(t *testing.T) {
	parent := weeklyParent(uuid.New())
	parent.StartDate = nil
	parent.CreatedAt = time.Date(2026, 1, 20, 15, 4, 0, 0, time.UTC)

	occ, err := Expand(parent, nil, nil, date("2026-01-01"), date("2026-01-31"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-26"}, dates(occ))
}

func TestExpand_Rejects(t *testing.T) {
	parent := weeklyParent(uuid.New())
	parent.IsRecurring = false

	_, err := Expand(parent, nil, nil, date("2026-01-01"), date("2026-01-31"))
	assert.ErrorIs(t, err, ErrNotRecurring)

	parent.IsRecurring = true
	parent.IsActive = false
	occ, err := Expand(parent, nil, nil, date("2026-01-01"), date("2026-01-31"))
	require.NoError(t, err)
	assert.Empty(t, occ)
}

func TestOccursOn(t *testing.T) {
	center := uuid.New()

	daily := weeklyParent(center)
	daily.RecurrenceType = entity.RecurrenceDaily

	monthly := weeklyParent(center)
	monthly.RecurrenceType = entity.RecurrenceMonthly
	monthly.StartDate = datePtr("2026-01-05")
	monthly.RecurrenceEndDate = datePtr("2026-06-30")

	standing := weeklyParent(center)
	standing.IsRecurring = false
	standing.RecurrenceType = entity.RecurrenceNone
	standing.RecurrenceEndDate = nil

	weekly := weeklyParent(center)
	moved := entity.ScheduleEntry{IsActive: true, IsException: true, ParentID: idPtr(weekly.ID), ExceptionDate: datePtr("2026-01-19")}
	moved.ID = uuid.New()
	cancelled := entity.ScheduleEntry{IsActive: false, IsException: true, ParentID: idPtr(weekly.ID), ExceptionDate: datePtr("2026-01-26")}
	cancelled.ID = uuid.New()
	exceptions := []entity.ScheduleEntry{moved, cancelled}

	holidays := []entity.Holiday{{CenterID: center, StartDate: date("2026-01-12"), EndDate: date("2026-01-12")}}

	tests := []struct {
		name   string
		entry  *entity.ScheduleEntry
		parent *entity.ScheduleEntry
		day    string
		want   bool
	}{
		{"daily on a tuesday", daily, daily, "2026-01-13", true},
		{"daily after its end", daily, daily, "2026-02-02", false},
		{"monthly on its day of month", monthly, monthly, "2026-03-05", true},
		{"monthly on its weekday only", monthly, monthly, "2026-01-12", false},
		{"weekly on its weekday", weekly, weekly, "2026-01-05", true},
		{"weekly on another weekday", weekly, weekly, "2026-01-06", false},
		{"weekly on a holiday", weekly, weekly, "2026-01-12", false},
		{"weekly replaced by an exception", weekly, weekly, "2026-01-19", false},
		{"exception on its own date", &moved, weekly, "2026-01-19", true},
		{"exception on another date", &moved, weekly, "2026-01-05", false},
		{"cancelled occurrence", weekly, weekly, "2026-01-26", false},
		{"cancelling exception", &cancelled, weekly, "2026-01-26", false},
		{"standing slot keeps repeating", standing, standing, "2026-05-04", true},
		{"standing slot before its start", standing, standing, "2025-12-29", false},
		{"exception without its parent", &moved, nil, "2026-01-19", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OccursOn(tt.entry, tt.parent, exceptions, holidays, date(tt.day)))
		})
	}
}

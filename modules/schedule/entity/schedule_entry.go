package entity

import (
	"fmt"
	"time"
	"trainhub-api/core/entity"
	"trainhub-api/core/timeofday"

	"github.com/google/uuid"
)

type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

var weekdays = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

func WeekdayOf(d time.Time) Weekday {
	return weekdays[d.Weekday()]
}

func ParseWeekday(s string) (Weekday, error) {
	for _, w := range weekdays {
		if string(w) == s {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", s)
}

func (w Weekday) Time() time.Weekday {
	for tw, v := range weekdays {
		if v == w {
			return tw
		}
	}
	return -1
}

type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// ScheduleEntry is one class slot. A recurring entry is a pattern that
// expands into dated occurrences; an exception overrides a single occurrence
// of its parent.
type ScheduleEntry struct {
	TrainingID        uuid.UUID      `db:"training_id"`
	CenterID          uuid.UUID      `db:"center_id"`
	GroupID           *uuid.UUID     `db:"group_id"`
	TeacherID         *uuid.UUID     `db:"teacher_id"`
	RoomID            *uuid.UUID     `db:"room_id"`
	Subject           string         `db:"subject"`
	DayOfWeek         Weekday        `db:"day_of_week"`
	StartTime         timeofday.Time `db:"start_time"`
	EndTime           timeofday.Time `db:"end_time"`
	IsActive          bool           `db:"is_active"`
	IsRecurring       bool           `db:"is_recurring"`
	RecurrenceType    RecurrenceType `db:"recurrence_type"`
	StartDate         *time.Time     `db:"start_date"`
	RecurrenceEndDate *time.Time     `db:"recurrence_end_date"`
	IsException       bool           `db:"is_exception"`
	ParentID          *uuid.UUID     `db:"parent_id"`
	ExceptionDate     *time.Time     `db:"exception_date"`
	CreatedBy         *uuid.UUID     `db:"created_by"`
	entity.BaseEntity
}

// ScheduleFilter narrows timetable listings. Nil fields are ignored.
type ScheduleFilter struct {
	TrainingID      *uuid.UUID
	CenterID        *uuid.UUID
	AssociationID   *uuid.UUID
	GroupID         *uuid.UUID
	TeacherID       *uuid.UUID
	RoomID          *uuid.UUID
	DayOfWeek       *Weekday
	IncludeInactive bool
}

type PaginatedScheduleEntries = entity.Pagination[ScheduleEntry]

package service

import (
	stderrors "errors"
	"time"
	"trainhub-api/core/timeofday"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
)

var ErrNotRecurring = stderrors.New("entry is not recurring")

// Occurrence is one dated class produced by expanding a recurring entry.
type Occurrence struct {
	Date        time.Time      `json:"date"`
	EntryID     uuid.UUID      `json:"entry_id"`
	ParentID    uuid.UUID      `json:"parent_id"`
	IsException bool           `json:"is_exception"`
	Subject     string         `json:"subject"`
	StartTime   timeofday.Time `json:"start_time"`
	EndTime     timeofday.Time `json:"end_time"`
	TeacherID   *uuid.UUID     `json:"teacher_id,omitempty"`
	RoomID      *uuid.UUID     `json:"room_id,omitempty"`
	GroupID     *uuid.UUID     `json:"group_id,omitempty"`
}

// Expand lists the occurrences of parent between from and to, both
// inclusive. Holidays of the parent's center remove a date outright, even
// when an exception exists for it. An active exception replaces the generated
// occurrence and an inactive one cancels it. Nothing is persisted.
func Expand(parent *entity.ScheduleEntry, exceptions []entity.ScheduleEntry, holidays []entity.Holiday, from, to time.Time) ([]Occurrence, error) {
	if parent == nil || !parent.IsRecurring || parent.IsException {
		return nil, ErrNotRecurring
	}
	out := []Occurrence{}
	if !parent.IsActive {
		return out, nil
	}

	anchor := dateOnly(parent.CreatedAt)
	if parent.StartDate != nil {
		anchor = dateOnly(*parent.StartDate)
	}
	start := laterOf(anchor, dateOnly(from))
	end := dateOnly(to)
	if parent.RecurrenceEndDate != nil && parent.RecurrenceEndDate.Before(end) {
		end = dateOnly(*parent.RecurrenceEndDate)
	}
	if end.Before(start) {
		return out, nil
	}

	byDate := make(map[time.Time]*entity.ScheduleEntry, len(exceptions))
	for i := range exceptions {
		ex := &exceptions[i]
		if ex.ParentID == nil || *ex.ParentID != parent.ID || ex.ExceptionDate == nil {
			continue
		}
		byDate[dateOnly(*ex.ExceptionDate)] = ex
	}

	centerHolidays := make([]entity.Holiday, 0, len(holidays))
	for _, h := range holidays {
		if h.CenterID == parent.CenterID {
			centerHolidays = append(centerHolidays, h)
		}
	}

	for _, d := range cadence(parent, anchor, start, end) {
		if onHoliday(centerHolidays, d) {
			continue
		}
		ex, ok := byDate[d]
		if !ok {
			out = append(out, occurrenceOf(parent, parent.ID, d, false))
			continue
		}
		if ex.IsActive {
			out = append(out, occurrenceOf(ex, parent.ID, d, true))
		}
	}
	return out, nil
}

// OccursOn reports whether entry takes place on day under the rules of
// Expand. A non-recurring entry is a standing weekly slot. An exception is
// placed on the cadence of parent, which is entry itself otherwise.
func OccursOn(entry, parent *entity.ScheduleEntry, exceptions []entity.ScheduleEntry, holidays []entity.Holiday, day time.Time) bool {
	if entry == nil {
		return false
	}
	pattern := entry
	if entry.IsException {
		pattern = parent
	}
	if pattern == nil || pattern.IsException {
		return false
	}
	if !pattern.IsRecurring {
		standing := *pattern
		standing.IsRecurring = true
		standing.RecurrenceType = entity.RecurrenceWeekly
		pattern = &standing
	}
	occ, err := Expand(pattern, exceptions, holidays, day, day)
	if err != nil {
		return false
	}
	for _, o := range occ {
		if o.EntryID == entry.ID {
			return true
		}
	}
	return false
}

// cadence generates candidate dates in [start, end], ascending.
func cadence(parent *entity.ScheduleEntry, anchor, start, end time.Time) []time.Time {
	var dates []time.Time
	switch parent.RecurrenceType {
	case entity.RecurrenceDaily:
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
	case entity.RecurrenceMonthly:
		day := anchor.Day()
		for y, m := anchor.Year(), anchor.Month(); ; m++ {
			if m > time.December {
				y, m = y+1, time.January
			}
			if time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).After(end) {
				break
			}
			d := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
			// months without that day are skipped, not clamped
			if d.Month() != m || d.Before(start) || d.After(end) {
				continue
			}
			dates = append(dates, d)
		}
	default:
		first := anchor
		if wd := parent.DayOfWeek.Time(); wd >= 0 {
			first = anchor.AddDate(0, 0, (int(wd)-int(anchor.Weekday())+7)%7)
		}
		if first.Before(start) {
			weeks := (int(start.Sub(first).Hours()/24) + 6) / 7
			first = first.AddDate(0, 0, 7*weeks)
		}
		for d := first; !d.After(end); d = d.AddDate(0, 0, 7) {
			dates = append(dates, d)
		}
	}
	return dates
}

func occurrenceOf(e *entity.ScheduleEntry, parentID uuid.UUID, d time.Time, exception bool) Occurrence {
	return Occurrence{
		Date:        d,
		EntryID:     e.ID,
		ParentID:    parentID,
		IsException: exception,
		Subject:     e.Subject,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		TeacherID:   e.TeacherID,
		RoomID:      e.RoomID,
		GroupID:     e.GroupID,
	}
}

func onHoliday(holidays []entity.Holiday, d time.Time) bool {
	for _, h := range holidays {
		if h.Covers(d) {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

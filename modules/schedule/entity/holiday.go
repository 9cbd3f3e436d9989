package entity

import (
	"time"
	"trainhub-api/core/entity"

	"github.com/google/uuid"
)

type Holiday struct {
	CenterID    uuid.UUID `db:"center_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	IsRecurring bool      `db:"is_recurring"`
	entity.BaseEntity
}

// Covers reports whether d falls inside the holiday. A recurring holiday
// repeats every year on the same month/day span, which may wrap over New Year.
func (h Holiday) Covers(d time.Time) bool {
	if !h.IsRecurring {
		day := dateOnly(d)
		return !day.Before(dateOnly(h.StartDate)) && !day.After(dateOnly(h.EndDate))
	}
	md := monthDay(d)
	from, to := monthDay(h.StartDate), monthDay(h.EndDate)
	if from <= to {
		return md >= from && md <= to
	}
	return md >= from || md <= to
}

func monthDay(d time.Time) int {
	return int(d.Month())*100 + d.Day()
}

func dateOnly(d time.Time) time.Time {
	y, m, dd := d.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

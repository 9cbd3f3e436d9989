package entity

import (
	"trainhub-api/core/entity"
	"trainhub-api/core/timeofday"

	"github.com/google/uuid"
)

// TeacherAvailability is a weekly window in which a teacher can (or, with
// IsAvailable false, cannot) be booked.
type TeacherAvailability struct {
	TeacherID   uuid.UUID      `db:"teacher_id"`
	DayOfWeek   Weekday        `db:"day_of_week"`
	StartTime   timeofday.Time `db:"start_time"`
	EndTime     timeofday.Time `db:"end_time"`
	IsAvailable bool           `db:"is_available"`
	entity.BaseEntity
}

// TeacherScope places a teacher in the organisation so staff rights over
// their availability can be checked.
type TeacherScope struct {
	CenterID      *uuid.UUID `db:"center_id"`
	AssociationID *uuid.UUID `db:"association_id"`
}

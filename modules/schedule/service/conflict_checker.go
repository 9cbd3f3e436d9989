package service

import (
	"context"
	"fmt"
	"trainhub-api/core/errors"
	"trainhub-api/core/timeofday"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
)

// Dimension is a resource that can be double-booked.
type Dimension string

const (
	DimensionTeacher Dimension = "teacher"
	DimensionRoom    Dimension = "room"
	DimensionGroup   Dimension = "group"
)

// Field is the request field a conflict on d is reported against.
func (d Dimension) Field() string {
	return string(d) + "_id"
}

// ConflictSource lists the active, non-exception entries booked on a
// resource for one weekday.
type ConflictSource interface {
	ListActiveByDimension(ctx context.Context, dim Dimension, id uuid.UUID, day entity.Weekday) ([]entity.ScheduleEntry, error)
}

// Candidate is the slot being checked.
type Candidate struct {
	// ID is the entry being updated; it never conflicts with itself.
	ID *uuid.UUID
	// ParentID is set for exceptions; an exception replaces its parent on
	// that date and does not conflict with it.
	ParentID  *uuid.UUID
	DayOfWeek entity.Weekday
	StartTime timeofday.Time
	EndTime   timeofday.Time
	TeacherID *uuid.UUID
	RoomID    *uuid.UUID
	GroupID   *uuid.UUID
}

func CandidateFrom(e *entity.ScheduleEntry) Candidate {
	c := Candidate{
		ParentID:  e.ParentID,
		DayOfWeek: e.DayOfWeek,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		TeacherID: e.TeacherID,
		RoomID:    e.RoomID,
		GroupID:   e.GroupID,
	}
	if e.ID != uuid.Nil {
		id := e.ID
		c.ID = &id
	}
	return c
}

type Conflict struct {
	Dimension Dimension      `json:"dimension"`
	EntryID   uuid.UUID      `json:"entry_id"`
	Subject   string         `json:"subject"`
	StartTime timeofday.Time `json:"start_time"`
	EndTime   timeofday.Time `json:"end_time"`
	Reason    string         `json:"reason"`
}

type Availability struct {
	TeacherAvailable bool       `json:"teacher_available"`
	RoomAvailable    bool       `json:"room_available"`
	GroupAvailable   bool       `json:"group_available"`
	Conflicts        []Conflict `json:"conflicts"`
}

func (a Availability) IsAvailable() bool {
	return a.TeacherAvailable && a.RoomAvailable && a.GroupAvailable
}

// Violations turns every conflict into a field-addressed violation.
func (a Availability) Violations() []errors.Violation {
	out := make([]errors.Violation, 0, len(a.Conflicts))
	for _, c := range a.Conflicts {
		out = append(out, errors.Violation{
			Field:   c.Dimension.Field(),
			Code:    errors.ErrScheduleConflict,
			Message: c.Reason,
		})
	}
	return out
}

// Overlaps is the half-open interval test: [s1,e1) and [s2,e2) overlap iff
// s1 < e2 and s2 < e1, so back-to-back slots do not.
func Overlaps(s1, e1, s2, e2 timeofday.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

type ConflictChecker struct{}

func NewConflictChecker() *ConflictChecker {
	return &ConflictChecker{}
}

// Check scans teacher, room and group independently and reports every
// conflict found.
func (cc *ConflictChecker) Check(ctx context.Context, src ConflictSource, c Candidate) (Availability, error) {
	result := Availability{
		TeacherAvailable: true,
		RoomAvailable:    true,
		GroupAvailable:   true,
		Conflicts:        []Conflict{},
	}

	scans := []struct {
		dim  Dimension
		id   *uuid.UUID
		flag *bool
	}{
		{DimensionTeacher, c.TeacherID, &result.TeacherAvailable},
		{DimensionRoom, c.RoomID, &result.RoomAvailable},
		{DimensionGroup, c.GroupID, &result.GroupAvailable},
	}

	for _, scan := range scans {
		if scan.id == nil {
			continue
		}
		existing, err := src.ListActiveByDimension(ctx, scan.dim, *scan.id, c.DayOfWeek)
		if err != nil {
			return Availability{}, err
		}
		for _, e := range existing {
			if cc.skip(c, &e) || !Overlaps(c.StartTime, c.EndTime, e.StartTime, e.EndTime) {
				continue
			}
			*scan.flag = false
			result.Conflicts = append(result.Conflicts, Conflict{
				Dimension: scan.dim,
				EntryID:   e.ID,
				Subject:   e.Subject,
				StartTime: e.StartTime,
				EndTime:   e.EndTime,
				Reason: fmt.Sprintf("%s is already booked on %s from %s to %s (%s)",
					dimensionLabel(scan.dim), e.DayOfWeek, e.StartTime, e.EndTime, e.Subject),
			})
		}
	}

	return result, nil
}

func (cc *ConflictChecker) skip(c Candidate, e *entity.ScheduleEntry) bool {
	if !e.IsActive || e.IsException {
		return true
	}
	if c.ID != nil && *c.ID == e.ID {
		return true
	}
	return c.ParentID != nil && *c.ParentID == e.ID
}

func dimensionLabel(d Dimension) string {
	switch d {
	case DimensionTeacher:
		return "Teacher"
	case DimensionRoom:
		return "Room"
	default:
		return "Group"
	}
}

package service

import (
	"context"
	"testing"
	"trainhub-api/core/timeofday"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"back to back", "08:00", "09:00", "09:00", "10:00", false},
		{"back to back reversed", "09:00", "10:00", "08:00", "09:00", false},
		{"partial", "09:30", "10:30", "09:00", "10:00", true},
		{"contained", "09:15", "09:45", "09:00", "10:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"disjoint", "11:00", "12:00", "09:00", "10:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tod(tt.s1), tod(tt.e1), tod(tt.s2), tod(tt.e2)))
		})
	}
}

func TestConflictChecker_Check(t *testing.T) {
	teacher, room, group := uuid.New(), uuid.New(), uuid.New()

	store := newMemStore()
	existing := store.put(entity.ScheduleEntry{
		Subject:   "Algebra",
		DayOfWeek: entity.Monday,
		StartTime: tod("09:00"),
		EndTime:   tod("10:00"),
		TeacherID: idPtr(teacher),
		RoomID:    idPtr(room),
		GroupID:   idPtr(group),
		IsActive:  true,
	})

	checker := NewConflictChecker()
	ctx := context.Background()

	candidate := func(start, end string) Candidate {
		return Candidate{
			DayOfWeek: entity.Monday,
			StartTime: tod(start),
			EndTime:   tod(end),
			TeacherID: idPtr(teacher),
		}
	}

	t.Run("back to back slot is free", func(t *testing.T) {
		avail, err := checker.Check(ctx, store, candidate("10:00", "11:00"))
		require.NoError(t, err)
		assert.True(t, avail.IsAvailable())
		assert.Empty(t, avail.Conflicts)
	})

	t.Run("overlapping slot conflicts on teacher", func(t *testing.T) {
		avail, err := checker.Check(ctx, store, candidate("09:30", "10:30"))
		require.NoError(t, err)
		assert.False(t, avail.TeacherAvailable)
		assert.True(t, avail.RoomAvailable)
		assert.True(t, avail.GroupAvailable)
		require.Len(t, avail.Conflicts, 1)
		assert.Equal(t, DimensionTeacher, avail.Conflicts[0].Dimension)
		assert.Equal(t, existing.ID, avail.Conflicts[0].EntryID)
		assert.Contains(t, avail.Conflicts[0].Reason, "Algebra")
	})

	t.Run("other weekday is free", func(t *testing.T) {
		c := candidate("09:00", "10:00")
		c.DayOfWeek = entity.Tuesday
		avail, err := checker.Check(ctx, store, c)
		require.NoError(t, err)
		assert.True(t, avail.IsAvailable())
	})

	t.Run("updating an entry does not conflict with itself", func(t *testing.T) {
		c := candidate("09:00", "10:30")
		c.ID = idPtr(existing.ID)
		c.RoomID = idPtr(room)
		c.GroupID = idPtr(group)
		avail, err := checker.Check(ctx, store, c)
		require.NoError(t, err)
		assert.True(t, avail.IsAvailable())
	})

	t.Run("every dimension is reported", func(t *testing.T) {
		c := candidate("09:00", "10:00")
		c.RoomID = idPtr(room)
		c.GroupID = idPtr(group)
		avail, err := checker.Check(ctx, store, c)
		require.NoError(t, err)
		assert.False(t, avail.TeacherAvailable)
		assert.False(t, avail.RoomAvailable)
		assert.False(t, avail.GroupAvailable)
		require.Len(t, avail.Conflicts, 3)

		violations := avail.Violations()
		fields := []string{violations[0].Field, violations[1].Field, violations[2].Field}
		assert.ElementsMatch(t, []string{"teacher_id", "room_id", "group_id"}, fields)
	})

	t.Run("exception does not conflict with its parent", func(t *testing.T) {
		c := candidate("09:00", "10:00")
		c.ParentID = idPtr(existing.ID)
		avail, err := checker.Check(ctx, store, c)
		require.NoError(t, err)
		assert.True(t, avail.IsAvailable())
	})
}

func TestConflictChecker_IgnoresInactiveAndExceptions(t *testing.T) {
	teacher := uuid.New()
	store := newMemStore()
	store.put(entity.ScheduleEntry{
		DayOfWeek: entity.Friday, StartTime: tod("14:00"), EndTime: tod("15:00"),
		TeacherID: idPtr(teacher), IsActive: false,
	})
	store.put(entity.ScheduleEntry{
		DayOfWeek: entity.Friday, StartTime: tod("14:00"), EndTime: tod("15:00"),
		TeacherID: idPtr(teacher), IsActive: true, IsException: true,
	})

	avail, err := NewConflictChecker().Check(context.Background(), store, Candidate{
		DayOfWeek: entity.Friday,
		StartTime: timeofday.New(14, 0, 0),
		EndTime:   timeofday.New(15, 0, 0),
		TeacherID: idPtr(teacher),
	})
	require.NoError(t, err)
	assert.True(t, avail.IsAvailable())
}

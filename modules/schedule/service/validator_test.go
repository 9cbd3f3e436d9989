package service

import (
	"context"
	"testing"
	"time"
	"trainhub-api/core/errors"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipelineFixture struct {
	store    *memStore
	center   uuid.UUID
	training uuid.UUID
	room     uuid.UUID
	group    uuid.UUID
	teacher  uuid.UUID
}

func newPipelineFixture() pipelineFixture {
	f := pipelineFixture{
		store:    newMemStore(),
		center:   uuid.New(),
		training: uuid.New(),
		room:     uuid.New(),
		group:    uuid.New(),
		teacher:  uuid.New(),
	}
	f.store.roomCenter[f.room] = f.center
	f.store.groupTrain[f.group] = f.training
	return f
}

func (f pipelineFixture) entry(start, end string) *entity.ScheduleEntry {
	return &entity.ScheduleEntry{
		TrainingID:     f.training,
		CenterID:       f.center,
		TeacherID:      idPtr(f.teacher),
		RoomID:         idPtr(f.room),
		GroupID:        idPtr(f.group),
		Subject:        "Physics",
		DayOfWeek:      entity.Monday,
		StartTime:      tod(start),
		EndTime:        tod(end),
		IsActive:       true,
		RecurrenceType: entity.RecurrenceNone,
	}
}

func TestValidator_Order(t *testing.T) {
	ctx := context.Background()
	v := NewValidator(NewConflictChecker())

	t.Run("valid entry passes", func(t *testing.T) {
		f := newPipelineFixture()
		assert.Nil(t, v.Validate(ctx, f.store, f.entry("08:00", "09:00")))
	})

	t.Run("malformed interval", func(t *testing.T) {
		f := newPipelineFixture()
		appErr := v.Validate(ctx, f.store, f.entry("10:00", "10:00"))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrMalformedInterval, appErr.Code)
	})

	t.Run("room of another center is rejected before conflicts", func(t *testing.T) {
		f := newPipelineFixture()
		f.store.put(*f.entry("08:00", "09:00"))
		f.store.roomCenter[f.room] = uuid.New()

		appErr := v.Validate(ctx, f.store, f.entry("08:00", "09:00"))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrRoomCenterMismatch, appErr.Code)
	})

	t.Run("missing room", func(t *testing.T) {
		f := newPipelineFixture()
		e := f.entry("08:00", "09:00")
		e.RoomID = idPtr(uuid.New())
		appErr := v.Validate(ctx, f.store, e)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrNotFound, appErr.Code)
	})

	t.Run("group of another training", func(t *testing.T) {
		f := newPipelineFixture()
		f.store.groupTrain[f.group] = uuid.New()
		appErr := v.Validate(ctx, f.store, f.entry("08:00", "09:00"))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrGroupTrainingMismatch, appErr.Code)
	})

	t.Run("recurring without end date", func(t *testing.T) {
		f := newPipelineFixture()
		e := f.entry("08:00", "09:00")
		e.IsRecurring = true
		e.RecurrenceType = entity.RecurrenceWeekly
		appErr := v.Validate(ctx, f.store, e)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrIncompleteRecurrence, appErr.Code)
	})

	t.Run("recurring with type none", func(t *testing.T) {
		f := newPipelineFixture()
		e := f.entry("08:00", "09:00")
		e.IsRecurring = true
		end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
		e.RecurrenceEndDate = &end
		appErr := v.Validate(ctx, f.store, e)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrIncompleteRecurrence, appErr.Code)
	})

	t.Run("exception without parent", func(t *testing.T) {
		f := newPipelineFixture()
		e := f.entry("08:00", "09:00")
		e.IsException = true
		appErr := v.Validate(ctx, f.store, e)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrIncompleteException, appErr.Code)
	})

	t.Run("conflict carries every violation", func(t *testing.T) {
		f := newPipelineFixture()
		f.store.put(*f.entry("08:00", "09:00"))
		appErr := v.Validate(ctx, f.store, f.entry("08:30", "09:30"))
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrScheduleConflict, appErr.Code)
		violations, ok := appErr.Details.([]errors.Violation)
		require.True(t, ok)
		assert.Len(t, violations, 3)
	})

	t.Run("inactive entry holds no slot", func(t *testing.T) {
		f := newPipelineFixture()
		f.store.put(*f.entry("08:00", "09:00"))
		e := f.entry("08:30", "09:30")
		e.IsActive = false
		assert.Nil(t, v.Validate(ctx, f.store, e))
	})
}

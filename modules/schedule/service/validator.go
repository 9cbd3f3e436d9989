package service

import (
	"context"
	"trainhub-api/core/errors"
	"trainhub-api/core/logger"
	"trainhub-api/modules/schedule/entity"

	"github.com/google/uuid"
)

// ValidationStore is everything the pipeline reads. The repository satisfies
// it both on the pool and bound to a write transaction.
type ValidationStore interface {
	ConflictSource
	GetRoomCenter(ctx context.Context, roomID uuid.UUID) (*uuid.UUID, error)
	GetGroupTraining(ctx context.Context, groupID uuid.UUID) (*uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleEntry, error)
}

// Validator runs the ordered create/update checks. The same value runs
// inside the write transaction and behind the validate endpoints.
type Validator struct {
	checker *ConflictChecker
}

func NewValidator(checker *ConflictChecker) *Validator {
	return &Validator{checker: checker}
}

func violation(code errors.ErrorCode, field, msg string) *errors.AppError {
	return errors.NewAppError(code, msg, nil).
		WithDetails([]errors.Violation{{Field: field, Code: code, Message: msg}})
}

func storeFailure(op string, err error) *errors.AppError {
	logger.Error("ScheduleValidator:"+op, err)
	return errors.NewAppError(errors.ErrInternalServer, "failed to validate schedule entry", err)
}

// Validate fails on the first broken rule, in this order: interval, room
// center, group training, recurrence, exception, conflicts.
func (v *Validator) Validate(ctx context.Context, store ValidationStore, e *entity.ScheduleEntry) *errors.AppError {
	if !e.StartTime.Before(e.EndTime) {
		return violation(errors.ErrMalformedInterval, "end_time", "start_time must be before end_time")
	}

	if e.RoomID != nil {
		centerID, err := store.GetRoomCenter(ctx, *e.RoomID)
		if err != nil {
			return storeFailure("GetRoomCenter", err)
		}
		if centerID == nil {
			return violation(errors.ErrNotFound, "room_id", "room not found")
		}
		if *centerID != e.CenterID {
			return violation(errors.ErrRoomCenterMismatch, "room_id", "room does not belong to the entry's center")
		}
	}

	if e.GroupID != nil {
		trainingID, err := store.GetGroupTraining(ctx, *e.GroupID)
		if err != nil {
			return storeFailure("GetGroupTraining", err)
		}
		if trainingID == nil {
			return violation(errors.ErrNotFound, "group_id", "group not found")
		}
		if *trainingID != e.TrainingID {
			return violation(errors.ErrGroupTrainingMismatch, "group_id", "group does not belong to the entry's training")
		}
	}

	if e.IsRecurring {
		if e.RecurrenceType == "" || e.RecurrenceType == entity.RecurrenceNone {
			return violation(errors.ErrIncompleteRecurrence, "recurrence_type", "a recurring entry needs a recurrence_type")
		}
		if e.RecurrenceEndDate == nil {
			return violation(errors.ErrIncompleteRecurrence, "recurrence_end_date", "a recurring entry needs a recurrence_end_date")
		}
		if e.StartDate != nil && e.RecurrenceEndDate.Before(*e.StartDate) {
			return violation(errors.ErrIncompleteRecurrence, "recurrence_end_date", "recurrence_end_date is before start_date")
		}
	}

	if e.IsException {
		if e.ParentID == nil {
			return violation(errors.ErrIncompleteException, "parent_id", "an exception needs a parent entry")
		}
		if e.ExceptionDate == nil {
			return violation(errors.ErrIncompleteException, "exception_date", "an exception needs an exception_date")
		}
		parent, err := store.GetByID(ctx, *e.ParentID)
		if err != nil {
			return storeFailure("GetParent", err)
		}
		if parent == nil {
			return violation(errors.ErrNotFound, "parent_id", "parent entry not found")
		}
		if !parent.IsRecurring || parent.IsException {
			return violation(errors.ErrIncompleteException, "parent_id", "parent must be a recurring entry")
		}
	}

	// Inactive entries and cancelled occurrences hold no slot.
	if !e.IsActive {
		return nil
	}

	avail, err := v.checker.Check(ctx, store, CandidateFrom(e))
	if err != nil {
		return storeFailure("CheckConflicts", err)
	}
	if !avail.IsAvailable() {
		return errors.NewAppError(errors.ErrScheduleConflict, "the slot conflicts with existing entries", nil).
			WithDetails(avail.Violations())
	}
	return nil
}

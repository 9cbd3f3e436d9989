package service

import (
	"context"
	"trainhub-api/core/authz"
	"trainhub-api/core/constants"
	"trainhub-api/core/database"
	"trainhub-api/core/errors"
	"trainhub-api/modules/schedule/dto"
	"trainhub-api/modules/schedule/entity"
	"trainhub-api/modules/schedule/mapper"

	"github.com/google/uuid"
)

type AvailabilityStore interface {
	Create(ctx context.Context, a *entity.TeacherAvailability) error
	Update(ctx context.Context, a *entity.TeacherAvailability) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TeacherAvailability, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]entity.TeacherAvailability, error)
	GetTeacherScope(ctx context.Context, teacherID uuid.UUID) (*entity.TeacherScope, error)
}

type AvailabilityService struct {
	repo AvailabilityStore
}

func NewAvailabilityService(repo AvailabilityStore) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

func (s *AvailabilityService) Create(ctx context.Context, id authz.Identity, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	teacherID, appErr := s.owner(ctx, id, req.TeacherID)
	if appErr != nil {
		return nil, appErr
	}
	a, err := mapper.ToAvailabilityEntity(req, teacherID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := s.check(ctx, a); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, availabilityWriteError(errors.ErrCreateFailed, err)
	}
	return mapper.ToAvailabilityResponse(a), nil
}

func (s *AvailabilityService) Update(ctx context.Context, id authz.Identity, availabilityID uuid.UUID, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.load(ctx, id, availabilityID)
	if appErr != nil {
		return nil, appErr
	}
	a, err := mapper.ToAvailabilityEntity(req, existing.TeacherID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	a.BaseEntity = existing.BaseEntity
	if appErr := s.check(ctx, a); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, availabilityWriteError(errors.ErrUpdateFailed, err)
	}
	return mapper.ToAvailabilityResponse(a), nil
}

func (s *AvailabilityService) Delete(ctx context.Context, id authz.Identity, availabilityID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.load(ctx, id, availabilityID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, availabilityID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete availability failed", err)
	}
	return nil
}

// List returns the weekly windows of teacherID, or of the caller when nil.
func (s *AvailabilityService) List(ctx context.Context, id authz.Identity, teacherID *uuid.UUID) ([]dto.AvailabilityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	target := id.UserID
	if teacherID != nil && *teacherID != id.UserID {
		if appErr := s.authorizeTeacher(ctx, id, *teacherID); appErr != nil {
			return nil, appErr
		}
		target = *teacherID
	}
	items, err := s.repo.ListByTeacher(ctx, target)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get availability failed", err)
	}
	return mapper.ToAvailabilityResponses(items), nil
}

// owner resolves whose availability is written. Teachers may only write
// their own, staff only those of teachers inside their scope.
func (s *AvailabilityService) owner(ctx context.Context, id authz.Identity, requested *uuid.UUID) (uuid.UUID, *errors.AppError) {
	if id.Is(authz.RoleTeacher) {
		if requested != nil && *requested != id.UserID {
			return uuid.Nil, errors.NewAppError(errors.ErrForbidden, "teachers manage only their own availability", nil)
		}
		return id.UserID, nil
	}
	if requested == nil {
		return uuid.Nil, violation(errors.ErrInvalidInput, "teacher_id", "teacher_id is required")
	}
	if appErr := s.authorizeTeacher(ctx, id, *requested); appErr != nil {
		return uuid.Nil, appErr
	}
	return *requested, nil
}

func (s *AvailabilityService) load(ctx context.Context, id authz.Identity, availabilityID uuid.UUID) (*entity.TeacherAvailability, *errors.AppError) {
	a, err := s.repo.GetByID(ctx, availabilityID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get availability failed", err)
	}
	if a == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "availability not found", nil)
	}
	if id.Is(authz.RoleTeacher) {
		if a.TeacherID != id.UserID {
			return nil, errors.NewAppError(errors.ErrForbidden, "teachers manage only their own availability", nil)
		}
		return a, nil
	}
	if appErr := s.authorizeTeacher(ctx, id, a.TeacherID); appErr != nil {
		return nil, appErr
	}
	return a, nil
}

// authorizeTeacher checks teacherID works inside the identity's scope: any
// teacher for admins, the association's teachers for association staff,
// otherwise the teachers of the identity's own center.
func (s *AvailabilityService) authorizeTeacher(ctx context.Context, id authz.Identity, teacherID uuid.UUID) *errors.AppError {
	if id.Is(authz.RoleAdmin) {
		return nil
	}
	scope, err := s.repo.GetTeacherScope(ctx, teacherID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get teacher failed", err)
	}
	if scope == nil {
		return violation(errors.ErrNotFound, "teacher_id", "teacher not found")
	}
	if id.Is(authz.RoleAssociationStaff) {
		if id.AssociationID == nil || scope.AssociationID == nil || *id.AssociationID != *scope.AssociationID {
			return errors.NewAppError(errors.ErrForbidden, "teacher belongs to another association", nil)
		}
		return nil
	}
	if scope.CenterID == nil || !id.InCenter(*scope.CenterID) {
		return errors.NewAppError(errors.ErrForbidden, "teacher belongs to another center", nil)
	}
	return nil
}

func (s *AvailabilityService) check(ctx context.Context, a *entity.TeacherAvailability) *errors.AppError {
	if !a.StartTime.Before(a.EndTime) {
		return violation(errors.ErrMalformedInterval, "end_time", "start_time must be before end_time")
	}
	existing, err := s.repo.ListByTeacher(ctx, a.TeacherID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get availability failed", err)
	}
	for _, other := range existing {
		if other.ID == a.ID || other.DayOfWeek != a.DayOfWeek {
			continue
		}
		if Overlaps(a.StartTime, a.EndTime, other.StartTime, other.EndTime) {
			return violation(errors.ErrAvailabilityOverlap, "start_time",
				"overlaps the window "+other.StartTime.String()+"-"+other.EndTime.String())
		}
	}
	return nil
}

func availabilityWriteError(failCode errors.ErrorCode, err error) *errors.AppError {
	switch {
	case database.IsExclusionViolation(err):
		return violation(errors.ErrAvailabilityOverlap, "start_time", "overlaps an existing window")
	case database.IsCheckViolation(err):
		return violation(errors.ErrMalformedInterval, "end_time", "start_time must be before end_time")
	case database.IsForeignKeyViolation(err):
		return violation(errors.ErrNotFound, "teacher_id", "teacher not found")
	}
	return errors.NewAppError(failCode, "save availability failed", err)
}

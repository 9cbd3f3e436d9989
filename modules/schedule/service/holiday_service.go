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

type HolidayStore interface {
	HolidaySource
	Create(ctx context.Context, h *entity.Holiday) error
	Update(ctx context.Context, h *entity.Holiday) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Holiday, error)
}

// CenterScope resolves the association owning a center.
type CenterScope interface {
	GetCenterAssociation(ctx context.Context, centerID uuid.UUID) (*uuid.UUID, error)
}

type HolidayService struct {
	repo    HolidayStore
	centers CenterScope
}

func NewHolidayService(repo HolidayStore, centers CenterScope) *HolidayService {
	return &HolidayService{repo: repo, centers: centers}
}

func (s *HolidayService) Create(ctx context.Context, id authz.Identity, req *dto.HolidayRequest) (*dto.HolidayResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	h, appErr := toHoliday(req)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.authorize(ctx, id, h.CenterID); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, holidayWriteError(errors.ErrCreateFailed, err)
	}
	return mapper.ToHolidayResponse(h), nil
}

func (s *HolidayService) Update(ctx context.Context, id authz.Identity, holidayID uuid.UUID, req *dto.HolidayRequest) (*dto.HolidayResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.load(ctx, id, holidayID)
	if appErr != nil {
		return nil, appErr
	}
	h, appErr := toHoliday(req)
	if appErr != nil {
		return nil, appErr
	}
	// a holiday stays with its center
	h.CenterID = existing.CenterID
	h.BaseEntity = existing.BaseEntity
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, holidayWriteError(errors.ErrUpdateFailed, err)
	}
	return mapper.ToHolidayResponse(h), nil
}

func (s *HolidayService) Delete(ctx context.Context, id authz.Identity, holidayID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.load(ctx, id, holidayID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, holidayID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete holiday failed", err)
	}
	return nil
}

func (s *HolidayService) List(ctx context.Context, id authz.Identity, centerID uuid.UUID) ([]dto.HolidayResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := s.authorize(ctx, id, centerID); appErr != nil {
		return nil, appErr
	}
	items, err := s.repo.ListByCenter(ctx, centerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get holidays failed", err)
	}
	return mapper.ToHolidayResponses(items), nil
}

func (s *HolidayService) load(ctx context.Context, id authz.Identity, holidayID uuid.UUID) (*entity.Holiday, *errors.AppError) {
	h, err := s.repo.GetByID(ctx, holidayID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get holiday failed", err)
	}
	if h == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "holiday not found", nil)
	}
	if appErr := s.authorize(ctx, id, h.CenterID); appErr != nil {
		return nil, appErr
	}
	return h, nil
}

func (s *HolidayService) authorize(ctx context.Context, id authz.Identity, centerID uuid.UUID) *errors.AppError {
	switch id.Role {
	case authz.RoleAdmin:
		return nil
	case authz.RoleAssociationStaff:
		assoc, err := s.centers.GetCenterAssociation(ctx, centerID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get center failed", err)
		}
		if assoc == nil {
			return violation(errors.ErrNotFound, "center_id", "center not found")
		}
		if id.AssociationID == nil || *id.AssociationID != *assoc {
			return errors.NewAppError(errors.ErrForbidden, "center belongs to another association", nil)
		}
		return nil
	}
	if !id.InCenter(centerID) {
		return errors.NewAppError(errors.ErrForbidden, "holiday belongs to another center", nil)
	}
	return nil
}

func toHoliday(req *dto.HolidayRequest) (*entity.Holiday, *errors.AppError) {
	h, err := mapper.ToHolidayEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if h.EndDate.Before(h.StartDate) {
		return nil, violation(errors.ErrInvalidHolidayInterval, "end_date", "start_date must not be after end_date")
	}
	return h, nil
}

func holidayWriteError(failCode errors.ErrorCode, err error) *errors.AppError {
	switch {
	case database.IsCheckViolation(err):
		return violation(errors.ErrInvalidHolidayInterval, "end_date", "start_date must not be after end_date")
	case database.IsForeignKeyViolation(err):
		return violation(errors.ErrNotFound, "center_id", "center not found")
	}
	return errors.NewAppError(failCode, "save holiday failed", err)
}

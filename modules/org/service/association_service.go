package service

import (
	"context"
	"trainhub-api/core/authz"
	"trainhub-api/core/constants"
	"trainhub-api/core/errors"
	"trainhub-api/core/params"
	"trainhub-api/modules/org/dto"
	"trainhub-api/modules/org/entity"
	"trainhub-api/modules/org/mapper"

	"github.com/google/uuid"
)

func (s *OrgService) CreateAssociation(ctx context.Context, id authz.Identity, req *dto.AssociationRequest) (*dto.AssociationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := requireAdmin(id); appErr != nil {
		return nil, appErr
	}
	association, err := mapper.ToAssociationEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	var appErr *errors.AppError
	if association.Slug, appErr = s.uniqueSlug(ctx, "associations", association.Name); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.CreateAssociation(ctx, association); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "create association failed", err)
	}
	result := mapper.ToAssociationResponse(association)
	return &result, nil
}

// UpdateAssociation keeps the slug the association was created with.
func (s *OrgService) UpdateAssociation(ctx context.Context, id authz.Identity, associationID uuid.UUID, req *dto.AssociationRequest) (*dto.AssociationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if !id.Is(authz.RoleAdmin) && !(id.Is(authz.RoleAssociationStaff) && id.AssociationID != nil && *id.AssociationID == associationID) {
		return nil, forbidden("not allowed to manage this association")
	}
	existing, appErr := s.getAssociation(ctx, associationID)
	if appErr != nil {
		return nil, appErr
	}
	association, err := mapper.ToAssociationEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	association.BaseEntity = existing.BaseEntity
	association.Slug = existing.Slug
	if err := s.repo.UpdateAssociation(ctx, association); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "update association failed", err)
	}
	result := mapper.ToAssociationResponse(association)
	return &result, nil
}

func (s *OrgService) DeleteAssociation(ctx context.Context, id authz.Identity, associationID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := requireAdmin(id); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteAssociation(ctx, associationID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete association failed", err)
	}
	return nil
}

func (s *OrgService) GetAssociation(ctx context.Context, associationID uuid.UUID) (*dto.AssociationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	association, appErr := s.getAssociation(ctx, associationID)
	if appErr != nil {
		return nil, appErr
	}
	result := mapper.ToAssociationResponse(association)
	return &result, nil
}

func (s *OrgService) getAssociation(ctx context.Context, associationID uuid.UUID) (*entity.Association, *errors.AppError) {
	association, err := s.repo.GetAssociation(ctx, associationID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get association failed", err)
	}
	if association == nil {
		return nil, notFound("association")
	}
	return association, nil
}

func (s *OrgService) ListAssociations(ctx context.Context, filter entity.Filter, p params.QueryParams) (*dto.PaginatedAssociationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	filter.Search = p.Search
	associations, err := s.repo.ListAssociations(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get associations failed", err)
	}
	return mapper.ToPage(associations, mapper.ToAssociationResponse), nil
}

func (s *OrgService) CreateCenter(ctx context.Context, id authz.Identity, req *dto.CenterRequest) (*dto.CenterResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	center, err := mapper.ToCenterEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if !id.Is(authz.RoleAdmin) && !(id.Is(authz.RoleAssociationStaff) && id.AssociationID != nil && *id.AssociationID == center.AssociationID) {
		return nil, forbidden("not allowed to add centers to this association")
	}
	var appErr *errors.AppError
	if center.Slug, appErr = s.uniqueSlug(ctx, "centers", center.Name); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.CreateCenter(ctx, center); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "create center failed", err)
	}
	result := mapper.ToCenterResponse(center)
	return &result, nil
}

// UpdateCenter keeps the association and slug of the center.
func (s *OrgService) UpdateCenter(ctx context.Context, id authz.Identity, centerID uuid.UUID, req *dto.CenterRequest) (*dto.CenterResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.loadCenter(ctx, centerID)
	if appErr != nil {
		return nil, appErr
	}
	if !canSee(id, existing) || id.Is(authz.RoleTeacher, authz.RoleStudent) {
		return nil, forbidden("not allowed to manage this center")
	}
	center, err := mapper.ToCenterEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	center.BaseEntity = existing.BaseEntity
	center.AssociationID = existing.AssociationID
	center.Slug = existing.Slug
	if err := s.repo.UpdateCenter(ctx, center); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "update center failed", err)
	}
	result := mapper.ToCenterResponse(center)
	return &result, nil
}

func (s *OrgService) DeleteCenter(ctx context.Context, id authz.Identity, centerID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	center, appErr := s.loadCenter(ctx, centerID)
	if appErr != nil {
		return appErr
	}
	if !id.Is(authz.RoleAdmin) && !(id.Is(authz.RoleAssociationStaff) && canSee(id, center)) {
		return forbidden("not allowed to delete this center")
	}
	if err := s.repo.DeleteCenter(ctx, centerID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete center failed", err)
	}
	return nil
}

func (s *OrgService) GetCenter(ctx context.Context, id authz.Identity, centerID uuid.UUID) (*dto.CenterResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	center, appErr := s.loadCenter(ctx, centerID)
	if appErr != nil {
		return nil, appErr
	}
	if !canSee(id, center) {
		return nil, forbidden("not allowed to view this center")
	}
	result := mapper.ToCenterResponse(center)
	return &result, nil
}

func (s *OrgService) ListCenters(ctx context.Context, id authz.Identity, filter entity.Filter, p params.QueryParams) (*dto.PaginatedCenterResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := scope(id, &filter); appErr != nil {
		return nil, appErr
	}
	filter.Search = p.Search
	centers, err := s.repo.ListCenters(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get centers failed", err)
	}
	return mapper.ToPage(centers, mapper.ToCenterResponse), nil
}

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

func (s *OrgService) CreateRoom(ctx context.Context, id authz.Identity, req *dto.RoomRequest) (*dto.RoomResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	room, err := mapper.ToRoomEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := s.authorizeCenter(ctx, id, room.CenterID); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "create room failed", err)
	}
	result := mapper.ToRoomResponse(room)
	return &result, nil
}

// UpdateRoom keeps the room in its center.
func (s *OrgService) UpdateRoom(ctx context.Context, id authz.Identity, roomID uuid.UUID, req *dto.RoomRequest) (*dto.RoomResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.getRoom(ctx, roomID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.authorizeCenter(ctx, id, existing.CenterID); appErr != nil {
		return nil, appErr
	}
	room, err := mapper.ToRoomEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	room.BaseEntity = existing.BaseEntity
	room.CenterID = existing.CenterID
	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "update room failed", err)
	}
	result := mapper.ToRoomResponse(room)
	return &result, nil
}

func (s *OrgService) DeleteRoom(ctx context.Context, id authz.Identity, roomID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	room, appErr := s.getRoom(ctx, roomID)
	if appErr != nil {
		return appErr
	}
	if appErr := s.authorizeCenter(ctx, id, room.CenterID); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteRoom(ctx, roomID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete room failed", err)
	}
	return nil
}

func (s *OrgService) GetRoom(ctx context.Context, id authz.Identity, roomID uuid.UUID) (*dto.RoomResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	room, appErr := s.getRoom(ctx, roomID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.viewCenter(ctx, id, room.CenterID); appErr != nil {
		return nil, appErr
	}
	result := mapper.ToRoomResponse(room)
	return &result, nil
}

func (s *OrgService) getRoom(ctx context.Context, roomID uuid.UUID) (*entity.Room, *errors.AppError) {
	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get room failed", err)
	}
	if room == nil {
		return nil, notFound("room")
	}
	return room, nil
}

func (s *OrgService) ListRooms(ctx context.Context, id authz.Identity, filter entity.Filter, p params.QueryParams) (*dto.PaginatedRoomResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := scope(id, &filter); appErr != nil {
		return nil, appErr
	}
	filter.Search = p.Search
	rooms, err := s.repo.ListRooms(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get rooms failed", err)
	}
	return mapper.ToPage(rooms, mapper.ToRoomResponse), nil
}

// checkMaterialRoom requires a material's room to be in the material's center.
func (s *OrgService) checkMaterialRoom(ctx context.Context, m *entity.Material) *errors.AppError {
	if m.RoomID == nil {
		return nil
	}
	room, appErr := s.getRoom(ctx, *m.RoomID)
	if appErr != nil {
		return appErr
	}
	if room.CenterID != m.CenterID {
		return errors.NewAppError(errors.ErrRoomCenterMismatch, "room belongs to another center", nil)
	}
	return nil
}

func (s *OrgService) CreateMaterial(ctx context.Context, id authz.Identity, req *dto.MaterialRequest) (*dto.MaterialResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	material, err := mapper.ToMaterialEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := s.authorizeCenter(ctx, id, material.CenterID); appErr != nil {
		return nil, appErr
	}
	if appErr := s.checkMaterialRoom(ctx, material); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.CreateMaterial(ctx, material); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "create material failed", err)
	}
	result := mapper.ToMaterialResponse(material)
	return &result, nil
}

func (s *OrgService) UpdateMaterial(ctx context.Context, id authz.Identity, materialID uuid.UUID, req *dto.MaterialRequest) (*dto.MaterialResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.getMaterial(ctx, materialID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.authorizeCenter(ctx, id, existing.CenterID); appErr != nil {
		return nil, appErr
	}
	material, err := mapper.ToMaterialEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	material.BaseEntity = existing.BaseEntity
	material.CenterID = existing.CenterID
	if appErr := s.checkMaterialRoom(ctx, material); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.UpdateMaterial(ctx, material); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "update material failed", err)
	}
	result := mapper.ToMaterialResponse(material)
	return &result, nil
}

func (s *OrgService) DeleteMaterial(ctx context.Context, id authz.Identity, materialID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	material, appErr := s.getMaterial(ctx, materialID)
	if appErr != nil {
		return appErr
	}
	if appErr := s.authorizeCenter(ctx, id, material.CenterID); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteMaterial(ctx, materialID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete material failed", err)
	}
	return nil
}

func (s *OrgService) GetMaterial(ctx context.Context, id authz.Identity, materialID uuid.UUID) (*dto.MaterialResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	material, appErr := s.getMaterial(ctx, materialID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.viewCenter(ctx, id, material.CenterID); appErr != nil {
		return nil, appErr
	}
	result := mapper.ToMaterialResponse(material)
	return &result, nil
}

func (s *OrgService) getMaterial(ctx context.Context, materialID uuid.UUID) (*entity.Material, *errors.AppError) {
	material, err := s.repo.GetMaterial(ctx, materialID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get material failed", err)
	}
	if material == nil {
		return nil, notFound("material")
	}
	return material, nil
}

func (s *OrgService) ListMaterials(ctx context.Context, id authz.Identity, filter entity.Filter, p params.QueryParams) (*dto.PaginatedMaterialResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := scope(id, &filter); appErr != nil {
		return nil, appErr
	}
	filter.Search = p.Search
	materials, err := s.repo.ListMaterials(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get materials failed", err)
	}
	return mapper.ToPage(materials, mapper.ToMaterialResponse), nil
}

func (s *OrgService) CreateGroup(ctx context.Context, id authz.Identity, req *dto.GroupRequest) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group, err := mapper.ToGroupEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := s.authorizeCenter(ctx, id, group.CenterID); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.CreateGroup(ctx, group); err != nil {
		return nil, writeError(errors.ErrCreateFailed, "create group failed", err)
	}
	result := mapper.ToGroupResponse(group)
	return &result, nil
}

// UpdateGroup keeps the group in its center. The training may change.
func (s *OrgService) UpdateGroup(ctx context.Context, id authz.Identity, groupID uuid.UUID, req *dto.GroupRequest) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, appErr := s.getGroup(ctx, groupID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.authorizeCenter(ctx, id, existing.CenterID); appErr != nil {
		return nil, appErr
	}
	group, err := mapper.ToGroupEntity(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	group.BaseEntity = existing.BaseEntity
	group.CenterID = existing.CenterID
	if err := s.repo.UpdateGroup(ctx, group); err != nil {
		return nil, writeError(errors.ErrUpdateFailed, "update group failed", err)
	}
	result := mapper.ToGroupResponse(group)
	return &result, nil
}

func (s *OrgService) DeleteGroup(ctx context.Context, id authz.Identity, groupID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group, appErr := s.getGroup(ctx, groupID)
	if appErr != nil {
		return appErr
	}
	if appErr := s.authorizeCenter(ctx, id, group.CenterID); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteGroup(ctx, groupID); err != nil {
		return writeError(errors.ErrDeleteFailed, "delete group failed", err)
	}
	return nil
}

func (s *OrgService) GetGroup(ctx context.Context, id authz.Identity, groupID uuid.UUID) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group, appErr := s.getGroup(ctx, groupID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.viewCenter(ctx, id, group.CenterID); appErr != nil {
		return nil, appErr
	}
	result := mapper.ToGroupResponse(group)
	return &result, nil
}

func (s *OrgService) getGroup(ctx context.Context, groupID uuid.UUID) (*entity.TrainingGroup, *errors.AppError) {
	group, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return nil, notFound("group")
	}
	return group, nil
}

func (s *OrgService) ListGroups(ctx context.Context, id authz.Identity, filter entity.Filter, p params.QueryParams) (*dto.PaginatedGroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := scope(id, &filter); appErr != nil {
		return nil, appErr
	}
	filter.Search = p.Search
	groups, err := s.repo.ListGroups(ctx, filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get groups failed", err)
	}
	return mapper.ToPage(groups, mapper.ToGroupResponse), nil
}
